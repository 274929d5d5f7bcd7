// Package domain defines the core types and interfaces for the recipe
// constructor. All other packages depend on domain; domain depends on nothing.
package domain

// Ingredient is a single ingredient row. Amount is free-form text
// ("200 g", "1 tbsp", "to taste") and may be empty.
type Ingredient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Recipe is the aggregate the app edits and exports. Instructions are
// always stored in raw markup form — step text containing {{name}}
// ingredient placeholders — and are only resolved to display text on
// demand. Display text is never written back here except indirectly,
// when an edited step is re-marked-up by the generation service.
type Recipe struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Category        string       `json:"category"`
	ImageRef        string       `json:"imageUrl"`
	Description     string       `json:"description"`
	Ingredients     []Ingredient `json:"ingredients"`
	Instructions    []string     `json:"instructions"`
	Calories        int          `json:"calories"`
	CookTimeMinutes int          `json:"cookTime"`
}

// RecipeDraft is a recipe as returned by the generation service, before
// the app has assigned an ID or an image reference.
type RecipeDraft struct {
	Title           string
	Category        string
	Description     string
	Ingredients     []Ingredient
	Instructions    []string
	Calories        int
	CookTimeMinutes int
}

// SentinelCategory is the non-deletable default category. Recipes whose
// category is removed are migrated here.
const SentinelCategory = "Uncategorized"

// Clone returns a deep copy of the recipe. Used for editing snapshots
// that must not alias the stored slices.
func (r *Recipe) Clone() *Recipe {
	out := *r
	out.Ingredients = CloneIngredients(r.Ingredients)
	out.Instructions = append([]string(nil), r.Instructions...)
	return &out
}

// CloneIngredients deep-copies an ingredient list.
func CloneIngredients(in []Ingredient) []Ingredient {
	if in == nil {
		return nil
	}
	out := make([]Ingredient, len(in))
	copy(out, in)
	return out
}
