package stats

import (
	"math"
	"strconv"
	"strings"
)

// Normalize coerces raw aggregate values into Totals. Anything that is not a
// non-negative finite number becomes 0.
func Normalize(raw RawTotals) Totals {
	return Totals{
		Goals:         ToCount(raw.Goals),
		Assists:       ToCount(raw.Assists),
		Saves:         ToCount(raw.Saves),
		Tackles:       ToCount(raw.Tackles),
		Interceptions: ToCount(raw.Interceptions),
		HeadersWon:    ToCount(raw.HeadersWon),
		YellowCards:   ToCount(raw.YellowCards),
		RedCards:      ToCount(raw.RedCards),
		Fouls:         ToCount(raw.Fouls),
		ShotsOnTarget: ToCount(raw.ShotsOnTarget),
		Offsides:      ToCount(raw.Offsides),
		GamesPlayed:   ToCount(raw.GamesPlayed),
	}
}

// ToCount converts a single raw value. Fractions are truncated.
func ToCount(v any) int {
	switch value := v.(type) {
	case nil:
		return 0
	case int:
		return nonNegative(int64(value))
	case int8:
		return nonNegative(int64(value))
	case int16:
		return nonNegative(int64(value))
	case int32:
		return nonNegative(int64(value))
	case int64:
		return nonNegative(value)
	case uint:
		return fromUint(uint64(value))
	case uint8:
		return fromUint(uint64(value))
	case uint16:
		return fromUint(uint64(value))
	case uint32:
		return fromUint(uint64(value))
	case uint64:
		return fromUint(value)
	case float32:
		return fromFloat(float64(value))
	case float64:
		return fromFloat(value)
	case []byte:
		return fromString(string(value))
	case string:
		return fromString(value)
	case *string:
		if value == nil {
			return 0
		}
		return fromString(*value)
	case *int:
		if value == nil {
			return 0
		}
		return nonNegative(int64(*value))
	default:
		return 0
	}
}

func fromString(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return nonNegative(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return fromFloat(f)
}

func fromFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt
	}
	return nonNegative(int64(f))
}

func fromUint(u uint64) int {
	if u > math.MaxInt64 {
		return math.MaxInt
	}
	return nonNegative(int64(u))
}

func nonNegative(n int64) int {
	if n <= 0 {
		return 0
	}
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
