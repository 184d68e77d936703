package shopper

import (
	"context"
	"fmt"
	"strings"

	"npc_outfitter/pkg/core/budget"
	"npc_outfitter/pkg/core/catalog"
	"npc_outfitter/pkg/core/character"
	"npc_outfitter/pkg/core/credits"
	"npc_outfitter/pkg/core/result"
)

// Loadout is a complete shopping outcome: the estimated budget plus the
// picks for every category. Categories that failed or came back empty are
// simply absent, never an error at this level.
type Loadout struct {
	Budget      budget.EstimatedBudget `json:"budget"`
	Armour      *ArmourSuggestion      `json:"armour,omitempty"`
	Weapons     []catalog.Equipment    `json:"weapons"`
	Tools       []catalog.Equipment    `json:"tools"`
	Commodities []catalog.Equipment    `json:"commodities"`
}

// TotalSpent sums the prices of everything in the loadout.
func (l Loadout) TotalSpent() int {
	total := 0
	if l.Armour != nil {
		total += l.Armour.Armour.Price + totalPrice(l.Armour.Augments)
	}
	total += totalPrice(l.Weapons)
	total += totalPrice(l.Tools)
	total += totalPrice(l.Commodities)
	return total
}

// Markdown renders the loadout as a markdown report.
func (l Loadout) Markdown(c character.Character) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Loadout for %s\n\n", c.FullName())
	fmt.Fprintf(&b, "%s is a %s %s with a monthly salary of %s and an equipment budget of %s.\n",
		c.FullName(), c.Experience, c.Role,
		credits.Format(l.Budget.Salary), credits.Format(l.Budget.MaxBudget))
	if l.Budget.Reasoning != "" {
		fmt.Fprintf(&b, "\n> %s\n", l.Budget.Reasoning)
	}

	writeSection := func(title string, budgeted int, items []catalog.Equipment) {
		fmt.Fprintf(&b, "\n## %s (budget %s)\n\n", title, credits.Format(budgeted))
		if len(items) == 0 {
			b.WriteString("Nothing suitable found.\n")
			return
		}
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item.ListingLine())
		}
	}

	if l.Armour != nil {
		writeSection("Armour", l.Budget.Armour,
			append([]catalog.Equipment{l.Armour.Armour}, l.Armour.Augments...))
	} else {
		writeSection("Armour", l.Budget.Armour, nil)
	}
	writeSection("Weapons", l.Budget.Weapons, l.Weapons)
	writeSection("Tools", l.Budget.Tools, l.Tools)
	writeSection("Commodities", l.Budget.Commodities, l.Commodities)

	fmt.Fprintf(&b, "\nTotal spent: %s\n", credits.Format(l.TotalSpent()))
	return b.String()
}

// Outfitter runs the whole advisory flow: estimate the budget, then shop
// every category against its share.
type Outfitter struct {
	estimator *budget.Estimator
	shopper   *PersonalShopper
}

func NewOutfitter(estimator *budget.Estimator, shopper *PersonalShopper) *Outfitter {
	return &Outfitter{estimator: estimator, shopper: shopper}
}

// SuggestLoadout estimates the character's budget and shops all four
// categories. Only a failed budget estimation fails the whole flow; a
// failed category is logged and left empty so the rest of the loadout
// still comes back.
func (o *Outfitter) SuggestLoadout(ctx context.Context, c character.Character) result.ErrorAware[Loadout] {
	est, serr := o.estimator.EstimateBudget(ctx, c).Unpack()
	if serr != nil {
		return result.FailWith[Loadout](serr)
	}

	loadout := Loadout{
		Budget:      est,
		Weapons:     []catalog.Equipment{},
		Tools:       []catalog.Equipment{},
		Commodities: []catalog.Equipment{},
	}

	if search, err := o.shopper.SuggestArmour(ctx, c, est.Armour).Unpack(); err != nil {
		fmt.Printf("[WARNING] armour shopping failed for %s: %v\n", c.FullName(), err)
	} else if search.Found {
		armour := search.Result
		loadout.Armour = &armour
	}

	if search, err := o.shopper.SuggestWeapons(ctx, c, est.Weapons).Unpack(); err != nil {
		fmt.Printf("[WARNING] weapon shopping failed for %s: %v\n", c.FullName(), err)
	} else if search.Found {
		loadout.Weapons = search.Result
	}

	if search, err := o.shopper.SuggestTools(ctx, c, est.Tools).Unpack(); err != nil {
		fmt.Printf("[WARNING] tool shopping failed for %s: %v\n", c.FullName(), err)
	} else if search.Found {
		loadout.Tools = search.Result
	}

	if search, err := o.shopper.SuggestCommodities(ctx, c, est.Commodities).Unpack(); err != nil {
		fmt.Printf("[WARNING] commodity shopping failed for %s: %v\n", c.FullName(), err)
	} else if search.Found {
		loadout.Commodities = search.Result
	}

	return result.OK(loadout)
}
