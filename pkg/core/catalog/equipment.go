// Package catalog is the equipment reference-data port: retrieval of
// catalog items matching category/price/tech-level criteria plus free-text
// semantic context. The catalog is read-only for the core; its lifecycle is
// owned by the seeding tool.
package catalog

import (
	"fmt"
	"strings"

	"npc_outfitter/pkg/core/credits"
)

// Section names as they appear in the source data.
const (
	SectionArmour        = "Armour"
	SectionAugmentation  = "Augmentation"
	SectionAugments      = "Augments"
	SectionComputers     = "Computers"
	SectionElectronics   = "Electronics"
	SectionHeavyWeapons  = "Heavy Weapons"
	SectionHomeComforts  = "Home Comforts"
	SectionMedical       = "Medical Supplies"
	SectionRobots        = "Robots"
	SectionSurvivalGear  = "Survival Gear"
	SectionTools         = "Tools"
	SectionWeapons       = "Weapons"
	SectionDiscWeapons   = "Discerning Weapons Specialist"
)

// NeedTag attaches one weighted functional-capability label to an item.
type NeedTag struct {
	Need   string `json:"need"`
	Weight int    `json:"weight"`
}

// Equipment is one catalog row. Prices are integer credits throughout;
// formatted Cr strings only appear in prompt text. Law is the law level
// above which the item is illegal, nil when unknown.
type Equipment struct {
	ID         string    `json:"id"`
	Section    string    `json:"section"`
	Subsection string    `json:"subsection"`
	Name       string    `json:"name"`
	TL         int       `json:"tl"`
	Mass       float64   `json:"mass"`
	Price      int       `json:"price"`
	AmmoPrice  int       `json:"ammo_price"`
	Species    string    `json:"species"`
	Skill      string    `json:"skill"`
	Book       string    `json:"book"`
	Page       int       `json:"page"`
	Contraband int       `json:"contraband"`
	Category   string    `json:"category"`
	Law        *int      `json:"law,omitempty"`
	Notes      string    `json:"notes"`
	Mod        string    `json:"mod"`
	Needs      []NeedTag `json:"needs,omitempty"`
}

// ListingLine renders the item as one compact line for the model's
// candidate listing.
func (e Equipment) ListingLine() string {
	parts := []string{
		fmt.Sprintf("id: %s", e.ID),
		fmt.Sprintf("name: %s", e.Name),
		fmt.Sprintf("section: %s/%s", e.Section, e.Subsection),
		fmt.Sprintf("TL: %d", e.TL),
		fmt.Sprintf("price: %s", credits.Format(e.Price)),
		fmt.Sprintf("mass: %g", e.Mass),
	}
	if e.Skill != "" {
		parts = append(parts, fmt.Sprintf("skill: %s", e.Skill))
	}
	return strings.Join(parts, ", ")
}

// IndexDocument renders the per-item card that gets embedded into the
// vector index. Fields without values are left out so the embedding stays
// focused on what the item actually is.
func (e Equipment) IndexDocument() string {
	lines := []string{
		fmt.Sprintf("## Name: %s", e.Name),
		"### Metadata",
		fmt.Sprintf("- Section: %s", e.Section),
		fmt.Sprintf("- Subsection: %s", e.Subsection),
		fmt.Sprintf("- TL (technology level): %d", e.TL),
	}
	if e.Category != "" {
		lines = append(lines, fmt.Sprintf("- Category: %s", e.Category))
	}
	if e.Mass == 0 {
		lines = append(lines, "- Mass: negligible")
	} else {
		lines = append(lines, fmt.Sprintf("- Mass: %g", e.Mass))
	}
	if e.Price == 0 {
		lines = append(lines, "- Price: free")
	} else {
		lines = append(lines, fmt.Sprintf("- Price: %s", credits.Format(e.Price)))
	}
	if e.AmmoPrice > 0 {
		lines = append(lines, fmt.Sprintf("- Ammo Price: %s", credits.Format(e.AmmoPrice)))
	}
	if e.Species != "" {
		lines = append(lines, fmt.Sprintf("- Species that uses it: %s", e.Species))
	}
	if e.Skill != "" {
		lines = append(lines, fmt.Sprintf("- Skill required to properly use it: %s", e.Skill))
	}
	if e.Book != "" {
		lines = append(lines, fmt.Sprintf("- Source book: %s", e.Book))
	}
	if e.Law != nil {
		if *e.Law == 0 {
			lines = append(lines, "- Level of law above which the object is illegal: legal everywhere")
		} else {
			lines = append(lines, fmt.Sprintf("- Level of law above which the object is illegal: %d", *e.Law))
		}
	}
	if e.Notes != "" {
		lines = append(lines, fmt.Sprintf("- Notes: %s", e.Notes))
	}
	if e.Mod != "" {
		lines = append(lines, fmt.Sprintf("- Mod: %s", e.Mod))
	}
	if len(e.Needs) > 0 {
		tags := make([]string, len(e.Needs))
		for i, tag := range e.Needs {
			tags[i] = fmt.Sprintf("%s (%d/10)", tag.Need, tag.Weight)
		}
		lines = append(lines, fmt.Sprintf("- Fulfills needs: %s", strings.Join(tags, ", ")))
	}
	return strings.Join(lines, "\n")
}
