package catalog

import (
	"context"
	"strings"
	"testing"
)

func sampleItems() []Equipment {
	law := 4
	return []Equipment{
		{ID: "eq-1", Section: SectionArmour, Subsection: "Combat Armour", Name: "Combat Armour", TL: 11, Price: 88000, Skill: "Vacc Suit"},
		{ID: "eq-2", Section: SectionArmour, Subsection: "Light Armour", Name: "Flak Jacket", TL: 7, Price: 100},
		{ID: "eq-3", Section: SectionWeapons, Subsection: "Slug Pistols", Name: "Autopistol", TL: 6, Price: 200, Law: &law, AmmoPrice: 10},
		{ID: "eq-4", Section: SectionWeapons, Subsection: "Blades", Name: "Cutlass", TL: 2, Price: 200},
		{ID: "eq-5", Section: SectionTools, Subsection: "Toolkits", Name: "Mechanical Toolkit", TL: 8, Price: 1000, Skill: "Mechanic"},
	}
}

func TestCriteriaMatchesPriceCeiling(t *testing.T) {
	c := Criteria{MaxPrice: IntPtr(100)}
	repo := NewMemoryRepository(sampleItems()...)

	res := repo.FindByCriteria(context.Background(), c, "", 20)
	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Err())
	}
	for _, item := range res.Value() {
		if item.Price > 100 {
			t.Errorf("item %s with price %d leaked past maxPrice 100", item.ID, item.Price)
		}
	}
	if len(res.Value()) != 1 || res.Value()[0].ID != "eq-2" {
		t.Errorf("expected only the flak jacket, got %+v", res.Value())
	}
}

func TestCriteriaMatchesSectionsAndTL(t *testing.T) {
	c := Criteria{
		Sections: Sections(SectionWeapons),
		MaxTL:    IntPtr(5),
	}
	repo := NewMemoryRepository(sampleItems()...)

	res := repo.FindByCriteria(context.Background(), c, "", 20)
	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Err())
	}
	if len(res.Value()) != 1 || res.Value()[0].ID != "eq-4" {
		t.Errorf("expected only the cutlass (TL 2), got %+v", res.Value())
	}
}

func TestCriteriaSubsectionFilter(t *testing.T) {
	c := Criteria{Sections: Subsections(SectionWeapons, "Blades")}
	if !c.Matches(sampleItems()[3]) {
		t.Error("cutlass should match Weapons/Blades")
	}
	if c.Matches(sampleItems()[2]) {
		t.Error("autopistol should not match Weapons/Blades")
	}
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	c := Criteria{Sections: Sections(SectionRobots)}
	repo := NewMemoryRepository(sampleItems()...)

	res := repo.FindByCriteria(context.Background(), c, "", 20)
	if res.Failed() {
		t.Fatal("nothing qualifying must come back as an empty list, not an error")
	}
	if len(res.Value()) != 0 {
		t.Errorf("expected empty list, got %+v", res.Value())
	}
}

func TestStoreFailurePropagates(t *testing.T) {
	repo := NewMemoryRepository(sampleItems()...)
	repo.FailWith = "catalog store unavailable"

	res := repo.FindByCriteria(context.Background(), Criteria{}, "", 20)
	if !res.Failed() {
		t.Fatal("store failure must surface as a soft error")
	}
}

func TestSemanticQueryRendersConstraints(t *testing.T) {
	c := Criteria{
		Sections: Sections(SectionArmour),
		MaxPrice: IntPtr(2500),
		MaxTL:    IntPtr(12),
	}
	q := c.SemanticQuery("A veteran marine.")
	for _, want := range []string{"Armour", "Cr2,500", "tech level at most 12", "A veteran marine."} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q should contain %q", q, want)
		}
	}
}

func TestListingLineAndIndexDocument(t *testing.T) {
	item := sampleItems()[0]
	line := item.ListingLine()
	for _, want := range []string{"id: eq-1", "Combat Armour", "TL: 11", "Cr88,000", "skill: Vacc Suit"} {
		if !strings.Contains(line, want) {
			t.Errorf("listing line %q should contain %q", line, want)
		}
	}

	free := Equipment{ID: "x", Section: SectionTools, Subsection: "Misc", Name: "String", TL: 1, Price: 0}
	doc := free.IndexDocument()
	if !strings.Contains(doc, "- Price: free") {
		t.Errorf("zero price should render as free, got:\n%s", doc)
	}
	if strings.Contains(doc, "Ammo Price") {
		t.Error("absent ammo price should be omitted from the index document")
	}
}

func TestVectorLiteral(t *testing.T) {
	got := VectorLiteral([]float32{0.5, -1, 2})
	if got != "[0.5,-1,2]" {
		t.Errorf("VectorLiteral = %q", got)
	}
}
