// Package character holds the immutable character-sheet model the advisor
// works from. Nothing in the core ever mutates a Character.
package character

import "strings"

// Characteristics are the six named attributes, each in [2,15].
type Characteristics struct {
	DEX int `json:"DEX"`
	EDU int `json:"EDU"`
	END int `json:"END"`
	INT int `json:"INT"`
	SOC int `json:"SOC"`
	STR int `json:"STR"`
}

// Character is the input sheet for budget estimation and shopping.
type Character struct {
	Characteristics Characteristics `json:"characteristics"`
	CitizenCategory string          `json:"citizen_category"`
	Experience      Experience      `json:"experience"`
	FirstName       string          `json:"first_name"`
	Role            string          `json:"role"`
	Skills          []string        `json:"skills"`
	Surname         string          `json:"surname"`
}

// FullName joins the name parts for prompt text.
func (c Character) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.Surname)
}

// Experience is an ordered seniority rating. Ordering matters: cumulative
// savings accrue across every level at or below the current one, and budget
// brackets are only shown up to and including the current level.
type Experience string

const (
	Recruit      Experience = "recruit"
	Rookie       Experience = "rookie"
	Intermediate Experience = "intermediate"
	Regular      Experience = "regular"
	Veteran      Experience = "veteran"
	Elite        Experience = "elite"
)

// ExperienceLevels lists all levels from lowest to highest seniority.
var ExperienceLevels = []Experience{Recruit, Rookie, Intermediate, Regular, Veteran, Elite}

// Valid reports whether e is one of the known levels.
func (e Experience) Valid() bool {
	return e.index() >= 0
}

func (e Experience) index() int {
	for i, level := range ExperienceLevels {
		if level == e {
			return i
		}
	}
	return -1
}

// LevelsUpTo returns every level from recruit up to and including e, in
// level order. Unknown levels are treated as regular, matching the
// estimator's defaulting.
func LevelsUpTo(e Experience) []Experience {
	idx := e.index()
	if idx < 0 {
		idx = Regular.index()
	}
	return ExperienceLevels[:idx+1]
}
