package catalog

import (
	"fmt"
	"strings"

	"npc_outfitter/pkg/core/credits"
)

// SectionFilter selects a whole section, or one subsection when Subsection
// is set.
type SectionFilter struct {
	Section    string
	Subsection string
}

func (f SectionFilter) String() string {
	if f.Subsection == "" {
		return f.Section
	}
	return f.Section + "/" + f.Subsection
}

// Criteria constrains a catalog lookup. The same criteria drive both the
// natural-language retrieval query and the hard post-filter applied to the
// fuzzy retrieval results.
type Criteria struct {
	Sections []SectionFilter
	MaxPrice *int // integer credits
	MaxTL    *int // 0-15
}

// Sections builds a filter list over whole sections.
func Sections(names ...string) []SectionFilter {
	filters := make([]SectionFilter, len(names))
	for i, name := range names {
		filters[i] = SectionFilter{Section: name}
	}
	return filters
}

// Subsections builds a filter list over (section, subsection) pairs.
func Subsections(section string, subsections ...string) []SectionFilter {
	filters := make([]SectionFilter, len(subsections))
	for i, sub := range subsections {
		filters[i] = SectionFilter{Section: section, Subsection: sub}
	}
	return filters
}

// IntPtr is a convenience for optional numeric criteria fields.
func IntPtr(v int) *int { return &v }

// SemanticQuery renders the criteria plus free-text context into the
// natural-language query handed to the embedding model.
func (c Criteria) SemanticQuery(additionalContext string) string {
	var b strings.Builder
	b.WriteString("Equipment")
	if len(c.Sections) > 0 {
		names := make([]string, len(c.Sections))
		for i, f := range c.Sections {
			names[i] = f.String()
		}
		fmt.Fprintf(&b, " from sections %s", strings.Join(names, ", "))
	}
	if c.MaxPrice != nil {
		fmt.Fprintf(&b, ", price up to %s", credits.Format(*c.MaxPrice))
	}
	if c.MaxTL != nil {
		fmt.Fprintf(&b, ", tech level at most %d", *c.MaxTL)
	}
	b.WriteString(".")
	if additionalContext != "" {
		b.WriteString(" ")
		b.WriteString(additionalContext)
	}
	return b.String()
}

// Matches applies the hard constraints. Fuzzy retrieval may surface items
// that violate them; those are dropped, never corrected.
func (c Criteria) Matches(e Equipment) bool {
	if c.MaxPrice != nil && e.Price > *c.MaxPrice {
		return false
	}
	if c.MaxTL != nil && e.TL > *c.MaxTL {
		return false
	}
	if len(c.Sections) == 0 {
		return true
	}
	for _, f := range c.Sections {
		if !strings.EqualFold(f.Section, e.Section) {
			continue
		}
		if f.Subsection == "" || strings.EqualFold(f.Subsection, e.Subsection) {
			return true
		}
	}
	return false
}
