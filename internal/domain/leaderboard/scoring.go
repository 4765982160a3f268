package leaderboard

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/kickstats/internal/domain/stats"
)

const (
	PolicyFormulaA = "formula_a"
	PolicyFormulaB = "formula_b"
)

const (
	BadgeHatTrickHero = "hatTrickHero"
	BadgePlaymaker    = "playmaker"
	BadgeWallOfFame   = "wallOfFame"
	BadgeNeverTired   = "neverTired"
	BadgeGoalGetter   = "goalGetter"
	BadgeSafeHands    = "safeHands"
	BadgeConsistent   = "consistent"
)

// Badge thresholds for the primary ranked leaderboard.
const (
	HatTrickHeroMinGoals = 3
	PlaymakerMinAssists  = 5
	WallOfFameMinSaves   = 10
	NeverTiredMinGames   = 3
)

// Badge thresholds for the friends comparison view.
const (
	GoalGetterMinGoals            = 10
	ComparisonPlaymakerMinAssists = 8
	SafeHandsMinSaves             = 8
	ConsistentMinGames            = 5
)

type Metric string

const (
	MetricGoals         Metric = "goals"
	MetricAssists       Metric = "assists"
	MetricSaves         Metric = "saves"
	MetricTackles       Metric = "tackles"
	MetricInterceptions Metric = "interceptions"
	MetricHeadersWon    Metric = "headersWon"
	MetricYellowCards   Metric = "yellowCards"
	MetricRedCards      Metric = "redCards"
	MetricFouls         Metric = "fouls"
	MetricShotsOnTarget Metric = "shotsOnTarget"
	MetricOffsides      Metric = "offsides"
	MetricGamesPlayed   Metric = "gamesPlayed"
)

// Of reads the metric out of totals. Unknown metrics read as 0.
func (m Metric) Of(t stats.Totals) int {
	switch m {
	case MetricGoals:
		return t.Goals
	case MetricAssists:
		return t.Assists
	case MetricSaves:
		return t.Saves
	case MetricTackles:
		return t.Tackles
	case MetricInterceptions:
		return t.Interceptions
	case MetricHeadersWon:
		return t.HeadersWon
	case MetricYellowCards:
		return t.YellowCards
	case MetricRedCards:
		return t.RedCards
	case MetricFouls:
		return t.Fouls
	case MetricShotsOnTarget:
		return t.ShotsOnTarget
	case MetricOffsides:
		return t.Offsides
	case MetricGamesPlayed:
		return t.GamesPlayed
	default:
		return 0
	}
}

type Term struct {
	Metric Metric
	Weight int
}

type BadgeRule struct {
	Name   string
	Metric Metric
	Min    int
}

// Policy is a linear points formula plus the badge set shown next to it.
type Policy struct {
	Name  string
	Terms []Term
	Rules []BadgeRule
}

func (p Policy) Score(t stats.Totals) int {
	points := 0
	for _, term := range p.Terms {
		points += term.Weight * term.Metric.Of(t)
	}
	return points
}

// Badges evaluates every rule of the policy. Unearned badges are present as false.
func (p Policy) Badges(t stats.Totals) Badges {
	out := make(Badges, len(p.Rules))
	for _, rule := range p.Rules {
		out[rule.Name] = rule.Metric.Of(t) >= rule.Min
	}
	return out
}

// FormulaA scores the primary ranked leaderboard.
func FormulaA() Policy {
	return Policy{
		Name: PolicyFormulaA,
		Terms: []Term{
			{Metric: MetricGoals, Weight: 4},
			{Metric: MetricAssists, Weight: 3},
			{Metric: MetricSaves, Weight: 2},
			{Metric: MetricTackles, Weight: 1},
			{Metric: MetricInterceptions, Weight: 1},
			{Metric: MetricHeadersWon, Weight: 1},
			{Metric: MetricYellowCards, Weight: -1},
			{Metric: MetricRedCards, Weight: -3},
		},
		Rules: []BadgeRule{
			{Name: BadgeHatTrickHero, Metric: MetricGoals, Min: HatTrickHeroMinGoals},
			{Name: BadgePlaymaker, Metric: MetricAssists, Min: PlaymakerMinAssists},
			{Name: BadgeWallOfFame, Metric: MetricSaves, Min: WallOfFameMinSaves},
			{Name: BadgeNeverTired, Metric: MetricGamesPlayed, Min: NeverTiredMinGames},
		},
	}
}

// FormulaB scores the friends comparison view.
func FormulaB() Policy {
	return Policy{
		Name: PolicyFormulaB,
		Terms: []Term{
			{Metric: MetricGoals, Weight: 10},
			{Metric: MetricAssists, Weight: 7},
			{Metric: MetricSaves, Weight: 5},
			{Metric: MetricTackles, Weight: 4},
			{Metric: MetricInterceptions, Weight: 3},
			{Metric: MetricGamesPlayed, Weight: 2},
		},
		Rules: []BadgeRule{
			{Name: BadgeGoalGetter, Metric: MetricGoals, Min: GoalGetterMinGoals},
			{Name: BadgePlaymaker, Metric: MetricAssists, Min: ComparisonPlaymakerMinAssists},
			{Name: BadgeSafeHands, Metric: MetricSaves, Min: SafeHandsMinSaves},
			{Name: BadgeConsistent, Metric: MetricGamesPlayed, Min: ConsistentMinGames},
		},
	}
}

func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyFormulaA, "a":
		return FormulaA(), nil
	case PolicyFormulaB, "b":
		return FormulaB(), nil
	default:
		return Policy{}, fmt.Errorf("unknown scoring policy %q", name)
	}
}
