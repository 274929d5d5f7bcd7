package domain

import "context"

// CollectionStore persists the recipe list and the category list as two
// independent collections. Implementations can be file-based or
// in-memory. Load never fails hard: a store that cannot parse its
// persisted state falls back to seed data.
type CollectionStore interface {
	Load(ctx context.Context) (recipes []Recipe, categories []string, err error)
	SaveRecipes(ctx context.Context, recipes []Recipe) error
	SaveCategories(ctx context.Context, categories []string) error
}

// Generator produces and rewrites recipe content. The app treats it as an
// external collaborator: it only consumes typed results or propagates
// failures. MarkupText is the one operation that never fails outward —
// on any error it returns the input text unchanged, so user-entered text
// is never destroyed.
type Generator interface {
	// GenerateRecipe turns a free-text prompt into a structured draft.
	// useWebGrounding lets the model consult web search results.
	GenerateRecipe(ctx context.Context, prompt string, useWebGrounding bool) (*RecipeDraft, error)

	// RegenerateInstructions rewrites the instruction list to match the
	// recipe's current ingredients, keeping style and dish intact. The
	// returned strings are raw markup.
	RegenerateInstructions(ctx context.Context, recipe *RecipeDraft) ([]string, error)

	// MarkupText re-derives raw markup from user-edited display text.
	// Never returns an error in practice; failures yield the input text.
	MarkupText(ctx context.Context, displayText string, ingredients []Ingredient) (string, error)

	// GenerateImage produces a data-URI image for the prompt.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or through the terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// IntentParser turns a line of top-level prompt input into an Intent.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}
