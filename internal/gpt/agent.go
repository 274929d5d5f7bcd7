package gpt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.Generator = (*Agent)(nil)

// Agent wraps the Client with recipe-domain prompt building and response
// parsing. It is the single generation entry-point the app calls.
type Agent struct {
	client *Client
	log    *logger.Logger
}

// NewAgent creates a recipe generation agent backed by the given Client.
func NewAgent(client *Client, log *logger.Logger) *Agent {
	return &Agent{client: client, log: log}
}

// draftWire is the JSON shape the model returns for a recipe draft.
type draftWire struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Ingredients []struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Calories     int      `json:"calories"`
	CookTime     int      `json:"cookTime"`
}

// GenerateRecipe turns a free-text prompt into a structured draft.
// Ingredient IDs are always assigned locally — the model cannot be
// trusted to produce unique ones.
func (a *Agent) GenerateRecipe(ctx context.Context, prompt string, useWebGrounding bool) (*domain.RecipeDraft, error) {
	system := PromptRecipe
	if useWebGrounding {
		system = PromptRecipeGrounded
	}

	raw, err := a.client.Chat(ctx, []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: fmt.Sprintf("Create a detailed recipe for: %q", prompt)},
	})
	if err != nil {
		return nil, err
	}

	raw = stripCodeFence(raw)
	if raw == "" {
		return nil, fmt.Errorf("gpt: recipe: %w", domain.ErrEmptyResponse)
	}

	var wire draftWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("gpt: parse recipe JSON: %w", err)
	}
	if wire.Title == "" || len(wire.Ingredients) == 0 || len(wire.Instructions) == 0 {
		return nil, fmt.Errorf("gpt: incomplete recipe: %w", domain.ErrEmptyResponse)
	}

	draft := &domain.RecipeDraft{
		Title:           wire.Title,
		Category:        wire.Category,
		Description:     wire.Description,
		Instructions:    wire.Instructions,
		Calories:        wire.Calories,
		CookTimeMinutes: wire.CookTime,
	}
	for _, ing := range wire.Ingredients {
		draft.Ingredients = append(draft.Ingredients, domain.Ingredient{
			ID:     uuid.NewString(),
			Name:   ing.Name,
			Amount: ing.Amount,
		})
	}

	a.log.Debug("gpt: recipe draft %q: %d ingredients, %d steps",
		draft.Title, len(draft.Ingredients), len(draft.Instructions))
	return draft, nil
}

// RegenerateInstructions rewrites the instruction list to fit the
// recipe's current ingredients. The old instructions are passed as
// reference so the dish keeps its character.
func (a *Agent) RegenerateInstructions(ctx context.Context, recipe *domain.RecipeDraft) ([]string, error) {
	raw, err := a.client.Chat(ctx, []Message{
		{Role: RoleSystem, Content: PromptRegenerate},
		{Role: RoleUser, Content: buildRegenerateContext(recipe)},
	})
	if err != nil {
		return nil, err
	}

	raw = stripCodeFence(raw)

	var resp struct {
		Instructions []string `json:"instructions"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("gpt: parse instructions JSON: %w", err)
	}
	if len(resp.Instructions) == 0 {
		return nil, fmt.Errorf("gpt: instructions: %w", domain.ErrEmptyResponse)
	}

	a.log.Debug("gpt: regenerated %d instructions for %q", len(resp.Instructions), recipe.Title)
	return resp.Instructions, nil
}

// MarkupText re-derives raw markup from edited display text. This is the
// one operation that never fails outward: blank input, an unusable
// ingredient list, a transport error, or an empty reply all yield the
// original text, so user-entered content is never destroyed.
func (a *Agent) MarkupText(ctx context.Context, displayText string, ingredients []domain.Ingredient) (string, error) {
	if strings.TrimSpace(displayText) == "" || len(ingredients) == 0 {
		return displayText, nil
	}

	var names []string
	for _, ing := range ingredients {
		if ing.Name != "" {
			names = append(names, ing.Name)
		}
	}
	if len(names) == 0 {
		return displayText, nil
	}

	raw, err := a.client.Chat(ctx, []Message{
		{Role: RoleSystem, Content: PromptMarkup},
		{Role: RoleUser, Content: fmt.Sprintf("Ingredient list: %s\n\nSentence to process: %s",
			strings.Join(names, ", "), displayText)},
	})
	if err != nil {
		a.log.Warn("gpt: markup failed, keeping user text: %v", err)
		return displayText, nil
	}

	marked := strings.TrimSpace(stripCodeFence(raw))
	if marked == "" {
		return displayText, nil
	}
	return marked, nil
}

// GenerateImage produces a data-URI dish photo for the prompt.
func (a *Agent) GenerateImage(ctx context.Context, prompt string) (string, error) {
	uri, err := a.client.Image(ctx, imagePromptPrefix+prompt)
	if err != nil {
		return "", err
	}
	return uri, nil
}

// buildRegenerateContext serializes the recipe into the plain-text block
// the rewrite prompt expects.
func buildRegenerateContext(r *domain.RecipeDraft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe: %s\n", r.Title)
	fmt.Fprintf(&b, "Description: %s\n", r.Description)

	b.WriteString("\nOld instructions (reference only):\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	b.WriteString("\nNEW ingredient list:\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "- %s: %s\n", ing.Name, ing.Amount)
	}
	return b.String()
}

// stripCodeFence removes ```json ... ``` wrappers that LLMs love to add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
