// Package budget estimates what an NPC can plausibly spend on equipment:
// a monthly salary derived from social standing and experience, a
// lifetime-savings ceiling, and a model-suggested split across the four
// shopping categories.
package budget

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"npc_outfitter/pkg/core/character"
	"npc_outfitter/pkg/core/credits"
	"npc_outfitter/pkg/core/prompt"
	"npc_outfitter/pkg/core/question"
	"npc_outfitter/pkg/core/result"
	"npc_outfitter/pkg/core/schema"
)

// EstimatedBudget is the estimator's full output. Salary and MaxBudget are
// computed locally; the four category amounts come from the model and are
// deliberately not forced to sum to MaxBudget.
type EstimatedBudget struct {
	Salary      int    `json:"salary"`
	MaxBudget   int    `json:"max_budget"`
	Armour      int    `json:"armour"`
	Weapons     int    `json:"weapons"`
	Tools       int    `json:"tools"`
	Commodities int    `json:"commodities"`
	Reasoning   string `json:"reasoning,omitempty"`
}

// monthlyLivingCostBySOC is the fixed, non-linear step table from SOC to
// monthly living expenses in credits.
var monthlyLivingCostBySOC = map[int]int{
	2:  400,
	4:  800,
	5:  1000,
	6:  1200,
	7:  1500,
	8:  2000,
	10: 2500,
	12: 5000,
	14: 12000,
	15: 20000,
}

// defaultLivingCost applies to SOC values missing from the table.
const defaultLivingCost = 2000

// expensesPctByExperience is the percentage of income spent on living,
// strictly decreasing with seniority.
var expensesPctByExperience = map[character.Experience]int{
	character.Recruit:      70,
	character.Rookie:       60,
	character.Intermediate: 50,
	character.Regular:      40,
	character.Veteran:      20,
	character.Elite:        10,
}

// defaultExpensesPct applies to unknown experience values.
const defaultExpensesPct = 40

// maxMonthsByExperience caps the randomized months-worked draw per level.
var maxMonthsByExperience = map[character.Experience]int{
	character.Recruit:      24,  // up to 2 years
	character.Rookie:       60,  // up to 5 years
	character.Intermediate: 72,  // up to 6 years
	character.Regular:      120, // up to 10 years
	character.Veteran:      180, // up to 15 years
	character.Elite:        204, // up to 17 years
}

// Estimator is stateless apart from its random source; one instance serves
// concurrent requests.
type Estimator struct {
	questions question.Repository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEstimator builds an estimator with a time-seeded random source.
func NewEstimator(questions question.Repository) *Estimator {
	return NewEstimatorWithRand(questions, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEstimatorWithRand pins the random source, letting tests reproduce the
// months-worked draws.
func NewEstimatorWithRand(questions question.Repository, rng *rand.Rand) *Estimator {
	return &Estimator{questions: questions, rng: rng}
}

// EstimateMonthlyLivingCost looks the character's SOC up in the living-cost
// table, defaulting for unmapped values.
func (e *Estimator) EstimateMonthlyLivingCost(c character.Character) int {
	if cost, ok := monthlyLivingCostBySOC[c.Characteristics.SOC]; ok {
		return cost
	}
	return defaultLivingCost
}

// EstimateSalary derives the monthly salary at the character's own level.
func (e *Estimator) EstimateSalary(c character.Character) int {
	return e.EstimateSalaryAt(c, c.Experience)
}

// EstimateSalaryAt derives the monthly salary the character would earn at
/// the given experience level: living cost scaled up by the level's
// spending percentage.
func (e *Estimator) EstimateSalaryAt(c character.Character, level character.Experience) int {
	cost := e.EstimateMonthlyLivingCost(c)
	pct, ok := expensesPctByExperience[level]
	if !ok {
		pct = defaultExpensesPct
	}
	return int(math.Round(float64(cost) * 100 / float64(pct)))
}

/// EstimateMaxTotalBudget accumulates savings over the whole career: for
// every level at or below the current one, a uniformly random number of
// months worked (up to the level's cap) times that level's disposable
// income. The randomness is intentional flavor variance.
func (e *Estimator) EstimateMaxTotalBudget(c character.Character) int {
	cost := e.EstimateMonthlyLivingCost(c)
	total := 0
	for _, level := range character.LevelsUpTo(c.Experience) {
		months := e.drawMonths(maxMonthsByExperience[level])
		salary := e.EstimateSalaryAt(c, level)
		total += (salary - cost) * months
	}
	return total
}

func (e *Estimator) drawMonths(cap int) int {
	if cap <= 0 {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(cap)
}

// categorySplit is the model's side of the budget answer.
type categorySplit struct {
	Armour      float64 `json:"armour"`
	Weapons     float64 `json:"weapons"`
	Tools       float64 `json:"tools"`
	Commodities float64 `json:"commodities"`
	Reasoning   string  `json:"reasoning"`
}

var splitSchema = schema.MustDefine(
	schema.Field{Name: "armour", Kind: schema.Number},
	schema.Field{Name: "weapons", Kind: schema.Number},
	schema.Field{Name: "tools", Kind: schema.Number},
	schema.Field{Name: "commodities", Kind: schema.Number},
	schema.Field{Name: "reasoning", Kind: schema.String, Optional: true},
)

// EstimateBudget computes salary and max budget locally, then asks the
// model to split the budget across the four categories. Model and schema
// failures propagate verbatim as soft errors.
func (e *Estimator) EstimateBudget(ctx context.Context, c character.Character) result.ErrorAware[EstimatedBudget] {
	salary := e.EstimateSalary(c)
	maxBudget := e.EstimateMaxTotalBudget(c)

	um := schema.NewJSONUnmarshaler[categorySplit](splitSchema)
	split, serr := question.Ask(ctx, e.questions,
		prompt.SystemPrompt(prompt.PromptIDs.BudgetSplit),
		e.buildQuestion(c, salary, maxBudget), um, nil).Unpack()
	if serr != nil {
		return result.FailWith[EstimatedBudget](serr)
	}

	return result.OK(EstimatedBudget{
		Salary:      salary,
		MaxBudget:   maxBudget,
		Armour:      int(math.Round(split.Armour)),
		Weapons:     int(math.Round(split.Weapons)),
		Tools:       int(math.Round(split.Tools)),
		Commodities: int(math.Round(split.Commodities)),
		Reasoning:   split.Reasoning,
	})
}

func (e *Estimator) buildQuestion(c character.Character, salary, maxBudget int) string {
	name := c.FullName()
	levels := make([]string, len(character.ExperienceLevels))
	for i, level := range character.ExperienceLevels {
		levels[i] = string(level)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is a human who is a %s.\n", name, c.Role)
	fmt.Fprintf(&b, "We can rate his/her experience %s, the rank of experience from lower to higher is: %s.\n\n",
		c.Experience, strings.Join(levels, ", "))
	fmt.Fprintf(&b, "%s characteristics are DEX: %d, EDU: %d, END: %d, INT: %d, SOC: %d, STR: %d.\n\n",
		name, c.Characteristics.DEX, c.Characteristics.EDU, c.Characteristics.END,
		c.Characteristics.INT, c.Characteristics.SOC, c.Characteristics.STR)
	fmt.Fprintf(&b, "%s skills are %s.\n\n", name, strings.Join(c.Skills, ", "))
	fmt.Fprintf(&b, "%s current monthly salary is %s and the max budget for equipment based on her/his savings along his working life is %s.\n\n",
		name, credits.Format(salary), credits.Format(maxBudget))
	fmt.Fprintf(&b, "Taking into account the profession of %s, suggest a budget for equipment distributed in several categories: armour, weapons, tools and commodities. Numbers are expressed as credits.", name)
	return b.String()
}
