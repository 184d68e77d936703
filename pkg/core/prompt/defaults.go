package prompt

// Known prompt identifiers.
var PromptIDs = struct {
	BudgetSplit   string
	ShopperChoose string
}{
	BudgetSplit:   "budget.split",
	ShopperChoose: "shopper.choose",
}

const defaultBudgetSplitPrompt = `You are a Traveller RPG assistant helping to design remarkable NPCs for the adventure.
The output must be in JSON format as it will be used by the system to return the result in a REST API.`

const defaultShopperChoosePrompt = `You are a Traveller RPG assistant helping to equip remarkable NPCs for the adventure.
Choose items only from the provided context listing, referencing them by their id.
NEVER suggest items whose combined price exceeds the stated budget.
The output must be in JSON format as it will be used by the system to return the result in a REST API.`

var defaults = map[string]string{
	PromptIDs.BudgetSplit:   defaultBudgetSplitPrompt,
	PromptIDs.ShopperChoose: defaultShopperChoosePrompt,
}

// SystemPrompt returns the registered override for id, or the hardcoded
// default when no override was loaded. Unknown IDs return an empty string.
func SystemPrompt(id string) string {
	if p, err := Get().GetSystemPrompt(id); err == nil && p != "" {
		return p
	}
	return defaults[id]
}
