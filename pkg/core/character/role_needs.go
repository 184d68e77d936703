package character

import (
	"fmt"
	"sort"
	"strings"
)

// RoleNeeds maps needs to weights on a 0-10 scale for one role.
// 10 is a core requirement, 7-9 an important capability, 4-6 useful,
// 1-3 occasional.
type RoleNeeds map[Need]int

// roleToNeeds is the application's source of truth for role intent; roles
// are never stored in the catalog.
var roleToNeeds = map[string]RoleNeeds{
	"pilot": {
		Communications: 8, Computing: 7, Sensors: 6, Survival: 5,
		Protection: 4, CombatRanged: 1, CombatMelee: 1,
	},
	"navigator": {
		Computing: 9, Sensors: 8, Communications: 6, Science: 4,
		Protection: 1, CombatRanged: 1, CombatMelee: 1,
	},
	"engineer": {
		Engineering: 10, Computing: 6, Science: 5, Survival: 4,
		Protection: 1, CombatRanged: 1, CombatMelee: 1,
	},
	"steward": {
		Social: 8, Medical: 5, Communications: 5, Cargo: 4,
		Protection: 1, CombatRanged: 1, CombatMelee: 1,
	},
	"medic": {
		Medical: 10, Science: 6, Computing: 4, Survival: 4,
		Protection: 1, CombatRanged: 1, CombatMelee: 1,
	},
	"marine": {
		CombatRanged: 10, CombatMelee: 8, Protection: 9, Survival: 6, Sensors: 5,
	},
	"gunner": {
		CombatRanged: 10, Sensors: 7, Computing: 5, Protection: 6, CombatMelee: 1,
	},
	"scout": {
		Sensors: 9, Survival: 8, Communications: 7, CombatRanged: 6,
		Protection: 5, Stealth: 5, CombatMelee: 1,
	},
	"technician": {
		Engineering: 9, Computing: 7, Science: 5, Hacking: 4,
		Protection: 1, CombatRanged: 1, CombatMelee: 1,
	},
	"leader": {
		Communications: 8, Computing: 6, Social: 7, CombatRanged: 5,
		Protection: 5, CombatMelee: 1,
	},
	"diplomat": {
		Social: 10, Communications: 8, Computing: 6, Protection: 3,
		CombatRanged: 2, CombatMelee: 1,
	},
	"entertainer": {
		Social: 9, Communications: 6, Computing: 4,
		Protection: 1, CombatRanged: 1, CombatMelee: 1,
	},
	"trader": {
		Social: 8, Communications: 7, Computing: 7, Cargo: 6, Sensors: 4,
		Protection: 1, CombatRanged: 1, CombatMelee: 1,
	},
	"thug": {
		CombatMelee: 9, CombatRanged: 8, Protection: 7, Stealth: 5,
	},
}

// NeedsForRole returns the needs profile for a role, or an empty profile
// for unknown roles (graceful degradation).
func NeedsForRole(role string) RoleNeeds {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if needs, ok := roleToNeeds[normalized]; ok {
		return needs
	}
	return RoleNeeds{}
}

// Describe renders the profile as prompt text, heaviest needs first.
// Returns an empty string for an empty profile.
func (rn RoleNeeds) Describe() string {
	if len(rn) == 0 {
		return ""
	}
	type weighted struct {
		need   Need
		weight int
	}
	entries := make([]weighted, 0, len(rn))
	for need, weight := range rn {
		entries = append(entries, weighted{need, weight})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].need < entries[j].need
	})
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s (%d/10)", e.need, e.weight)
	}
	return strings.Join(parts, ", ")
}
