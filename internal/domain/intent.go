package domain

// IntentType classifies what the user wants to do at the top-level prompt.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentListRecipes
	IntentOpenRecipe
	IntentNewRecipe
	IntentDeleteRecipe
	IntentExport
	IntentCategories
	IntentAddCategory
	IntentDeleteCategory
	IntentStyle
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentListRecipes:
		return "list_recipes"
	case IntentOpenRecipe:
		return "open_recipe"
	case IntentNewRecipe:
		return "new_recipe"
	case IntentDeleteRecipe:
		return "delete_recipe"
	case IntentExport:
		return "export"
	case IntentCategories:
		return "categories"
	case IntentAddCategory:
		return "add_category"
	case IntentDeleteCategory:
		return "delete_category"
	case IntentStyle:
		return "style"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. recipe number for open
}
