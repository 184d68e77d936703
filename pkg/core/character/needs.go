package character

// Need is a stable functional-capability label attached to equipment and to
// roles. Keep this vocabulary minimal and stable: changing it requires
// re-tagging the whole equipment catalog and re-indexing the vector store.
type Need string

const (
	CombatRanged   Need = "combat_ranged"
	CombatMelee    Need = "combat_melee"
	Protection     Need = "protection"
	Medical        Need = "medical"
	Survival       Need = "survival"
	Mobility       Need = "mobility"
	Stealth        Need = "stealth"
	Sensors        Need = "sensors"
	Communications Need = "communications"
	Computing      Need = "computing"
	Hacking        Need = "hacking"
	Engineering    Need = "engineering"
	Science        Need = "science"
	Social         Need = "social"
	Cargo          Need = "cargo"
)

// Needs lists the approved vocabulary.
var Needs = []Need{
	CombatRanged, CombatMelee, Protection, Medical, Survival,
	Mobility, Stealth, Sensors, Communications, Computing,
	Hacking, Engineering, Science, Social, Cargo,
}

// IsValidNeed reports whether need is in the approved vocabulary.
func IsValidNeed(need string) bool {
	for _, n := range Needs {
		if string(n) == need {
			return true
		}
	}
	return false
}

// IsValidNeedWeight reports whether weight is a legal tag weight (0-10).
func IsValidNeedWeight(weight int) bool {
	return weight >= 0 && weight <= 10
}
