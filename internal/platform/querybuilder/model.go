package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var errNilModel = errors.New("model cannot be nil")

type modelField struct {
	index  int
	column string
}

// modelFields caches the db-tagged exported fields per struct type.
var modelFields sync.Map // map[reflect.Type][]modelField

// InsertModel builds a single-row INSERT from the db tags of a struct. Untagged,
// unexported and "-" fields are skipped.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value, err := structValue(model)
	if err != nil {
		return "", nil, err
	}

	fields := fieldsOf(value.Type())
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("model %s has no db columns", value.Type())
	}

	cols := make([]string, len(fields))
	vals := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = f.column
		vals[i] = value.Field(f.index).Interface()
	}

	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

func structValue(model any) (reflect.Value, error) {
	if model == nil {
		return reflect.Value{}, errNilModel
	}
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, errNilModel
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}
	return value, nil
}

func fieldsOf(typ reflect.Type) []modelField {
	if cached, ok := modelFields.Load(typ); ok {
		return cached.([]modelField)
	}

	fields := make([]modelField, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		column, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		fields = append(fields, modelField{index: i, column: column})
	}

	actual, _ := modelFields.LoadOrStore(typ, fields)
	return actual.([]modelField)
}
