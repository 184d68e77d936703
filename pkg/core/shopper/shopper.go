// Package shopper composes per-category equipment shopping: candidate
// retrieval from the catalog within a sub-budget, a constrained model pick,
// running-budget deduction, and graceful fallback when a sub-shop fails.
package shopper

import (
	"context"
	"fmt"
	"strings"

	"npc_outfitter/pkg/core/catalog"
	"npc_outfitter/pkg/core/character"
	"npc_outfitter/pkg/core/credits"
	"npc_outfitter/pkg/core/prompt"
	"npc_outfitter/pkg/core/question"
	"npc_outfitter/pkg/core/result"
	"npc_outfitter/pkg/core/schema"
)

const (
	// Characters very rarely carry equipment above TL 12.
	maxTechLevel = 12
	// How many fuzzy candidates to pull from the catalog per shop.
	maxCandidates = 20
)

// Section filters per shopping category.
var (
	armourFilters  = catalog.Sections(catalog.SectionArmour)
	augmentFilters = catalog.Sections(catalog.SectionAugmentation, catalog.SectionAugments)

	rangedWeaponFilters = catalog.Subsections(catalog.SectionWeapons,
		"Slug Pistols", "Slug Rifles", "Energy Pistols", "Energy Rifles", "Shotguns")
	meleeWeaponFilters = catalog.Subsections(catalog.SectionWeapons,
		"Blades", "Bludgeoning Weapons")

	toolFilters = catalog.Sections(catalog.SectionTools, catalog.SectionElectronics,
		catalog.SectionComputers, catalog.SectionMedical, catalog.SectionSurvivalGear)

	commodityFilters = catalog.Sections(catalog.SectionHomeComforts, catalog.SectionRobots)
)

// ArmourSuggestion pairs a single armour pick with up to three augments
// bought from whatever sub-budget the armour left over.
type ArmourSuggestion struct {
	Armour   catalog.Equipment   `json:"armour"`
	Augments []catalog.Equipment `json:"augments"`
}

// PersonalShopper shops one category at a time against the injected ports.
type PersonalShopper struct {
	equipment catalog.Repository
	questions question.Repository
}

func New(equipment catalog.Repository, questions question.Repository) *PersonalShopper {
	return &PersonalShopper{equipment: equipment, questions: questions}
}

// itemPick is the model's side of a choose-items answer.
type itemPick struct {
	ItemIDs   []string `json:"itemIds"`
	Reasoning string   `json:"reasoning"`
}

var pickSchema = schema.MustDefine(
	schema.Field{Name: "itemIds", Kind: schema.StringArray},
	schema.Field{Name: "reasoning", Kind: schema.String, Optional: true},
)

// getAvailableItems retrieves candidates for a sub-budget. A non-positive
// budget short-circuits to an empty list without touching the catalog or
// the model.
func (s *PersonalShopper) getAvailableItems(ctx context.Context, c character.Character, filters []catalog.SectionFilter, budget int) result.ErrorAware[[]catalog.Equipment] {
	if budget <= 0 {
		return result.OK([]catalog.Equipment{})
	}
	criteria := catalog.Criteria{
		Sections: filters,
		MaxPrice: catalog.IntPtr(budget),
		MaxTL:    catalog.IntPtr(maxTechLevel),
	}
	return s.equipment.FindByCriteria(ctx, criteria, s.retrievalContext(c), maxCandidates)
}

// retrievalContext renders who is shopping, to steer semantic retrieval.
func (s *PersonalShopper) retrievalContext(c character.Character) string {
	ctx := fmt.Sprintf("%s is a %s %s.", c.FullName(), c.Experience, c.Role)
	if needs := character.NeedsForRole(c.Role).Describe(); needs != "" {
		ctx += fmt.Sprintf(" The role typically needs: %s.", needs)
	}
	return ctx
}

// chooseItems renders the candidates as a line-per-item listing, asks the
// model to pick by ID within the budget, and maps the returned IDs back to
// the candidate records. IDs that are not among the candidates are dropped
// and logged, not treated as a failure.
func (s *PersonalShopper) chooseItems(ctx context.Context, c character.Character, candidates []catalog.Equipment, budget int, want string, maxItems int) result.ErrorAware[[]catalog.Equipment] {
	byID := make(map[string]catalog.Equipment, len(candidates))
	lines := make([]string, len(candidates))
	for i, item := range candidates {
		byID[item.ID] = item
		lines[i] = "- " + item.ListingLine()
	}
	listing := "Context:\n" + strings.Join(lines, "\n")

	q := fmt.Sprintf(
		"%s is a %s %s looking for: %s.\nThe available budget is %s.\nChoose at most %d items from the context listing, referencing them by id.",
		c.FullName(), c.Experience, c.Role, want, credits.Format(budget), maxItems)

	um := schema.NewJSONUnmarshaler[itemPick](pickSchema)
	pick, serr := question.Ask(ctx, s.questions,
		prompt.SystemPrompt(prompt.PromptIDs.ShopperChoose), q, um,
		&question.AskOptions{AdditionalContext: listing}).Unpack()
	if serr != nil {
		return result.FailWith[[]catalog.Equipment](serr)
	}

	chosen := make([]catalog.Equipment, 0, len(pick.ItemIDs))
	for _, id := range pick.ItemIDs {
		item, known := byID[id]
		if !known {
			fmt.Printf("[WARNING] model suggested unknown item id %q, dropping it\n", id)
			continue
		}
		chosen = append(chosen, item)
		if len(chosen) == maxItems {
			break
		}
	}
	return result.OK(chosen)
}

// shopOnce runs the full retrieve-then-choose pattern for one section set.
// Zero candidates short-circuits to not-found without a model call; a
// backing-store failure propagates as an error.
func (s *PersonalShopper) shopOnce(ctx context.Context, c character.Character, filters []catalog.SectionFilter, budget int, want string, maxItems int) result.SearchResult[[]catalog.Equipment] {
	candidates, serr := s.getAvailableItems(ctx, c, filters, budget).Unpack()
	if serr != nil {
		return result.FailWith[result.Search[[]catalog.Equipment]](serr)
	}
	if len(candidates) == 0 {
		return result.NotFound[[]catalog.Equipment]()
	}

	chosen, serr := s.chooseItems(ctx, c, candidates, budget, want, maxItems).Unpack()
	if serr != nil {
		return result.FailWith[result.Search[[]catalog.Equipment]](serr)
	}
	if len(chosen) == 0 {
		return result.NotFound[[]catalog.Equipment]()
	}
	return result.Found(chosen)
}

// SuggestArmour shops one armour piece, then augments with whatever the
// armour left over. Augment failures degrade to zero augments; the armour
// pick survives.
func (s *PersonalShopper) SuggestArmour(ctx context.Context, c character.Character, budget int) result.SearchResult[ArmourSuggestion] {
	armourRes := s.shopOnce(ctx, c, armourFilters, budget,
		"the best single suit of armour they can afford for their profession", 1)
	search, serr := armourRes.Unpack()
	if serr != nil {
		return result.FailWith[result.Search[ArmourSuggestion]](serr)
	}
	if !search.Found {
		return result.NotFound[ArmourSuggestion]()
	}
	armour := search.Result[0]

	remaining := budget - armour.Price
	augments := []catalog.Equipment{}
	augRes := s.shopOnce(ctx, c, augmentFilters, remaining,
		fmt.Sprintf("up to three augments that complement their new %s", armour.Name), 3)
	if augSearch, augErr := augRes.Unpack(); augErr != nil {
		fmt.Printf("[WARNING] augment shopping failed, keeping armour without augments: %v\n", augErr)
	} else if augSearch.Found {
		augments = augSearch.Result
	}

	return result.Found(ArmourSuggestion{Armour: armour, Augments: augments})
}

// SuggestWeapons shops ranged weapons first, then melee with the remainder.
// The category is not-found only when both sub-shops yield nothing; a
// failed sub-shop degrades to an empty contribution.
func (s *PersonalShopper) SuggestWeapons(ctx context.Context, c character.Character, budget int) result.SearchResult[[]catalog.Equipment] {
	var weapons []catalog.Equipment

	rangedRes := s.shopOnce(ctx, c, rangedWeaponFilters, budget,
		"a firearm suitable for their profession", 2)
	if rangedSearch, serr := rangedRes.Unpack(); serr != nil {
		fmt.Printf("[WARNING] ranged-weapon shopping failed, trying melee only: %v\n", serr)
	} else if rangedSearch.Found {
		weapons = append(weapons, rangedSearch.Result...)
	}

	remaining := budget - totalPrice(weapons)
	meleeRes := s.shopOnce(ctx, c, meleeWeaponFilters, remaining,
		"a bladed or bludgeoning weapon for close quarters", 1)
	if meleeSearch, serr := meleeRes.Unpack(); serr != nil {
		fmt.Printf("[WARNING] melee-weapon shopping failed: %v\n", serr)
	} else if meleeSearch.Found {
		weapons = append(weapons, meleeSearch.Result...)
	}

	if len(weapons) == 0 {
		return result.NotFound[[]catalog.Equipment]()
	}
	return result.Found(weapons)
}

// SuggestTools shops the tool/electronics/medical/survival sections once.
func (s *PersonalShopper) SuggestTools(ctx context.Context, c character.Character, budget int) result.SearchResult[[]catalog.Equipment] {
	return s.shopOnce(ctx, c, toolFilters, budget,
		"the tools and technical equipment their profession relies on", 3)
}

// SuggestCommodities shops comfort and luxury goods once.
func (s *PersonalShopper) SuggestCommodities(ctx context.Context, c character.Character, budget int) result.SearchResult[[]catalog.Equipment] {
	return s.shopOnce(ctx, c, commodityFilters, budget,
		"commodities and comforts matching their social standing", 3)
}

func totalPrice(items []catalog.Equipment) int {
	total := 0
	for _, item := range items {
		total += item.Price
	}
	return total
}
