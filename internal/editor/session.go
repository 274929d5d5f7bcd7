// Package editor holds the editing session for a single recipe: the
// working copy, the per-step edit state, and the commit rules that keep
// stored instructions in raw markup form.
//
// Each instruction slot moves independently through three states:
//
//	Clean      — shown text is exactly the rendering of the raw step
//	Editing    — the user typed replacement display text (pending edit)
//	Committing — the pending text is being re-marked-up by the generator
//
// A commit whose text trims equal to the clean rendering is discarded
// without a generator call. A commit that changes the text replaces the
// raw step with the generator's markup. Stale completions are discarded
// by a per-index generation token, so a slow response can never clobber
// a newer edit.
package editor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/markup"
)

// Session is the editing state for one recipe. Safe for concurrent use;
// generator calls happen outside the lock.
type Session struct {
	mu  sync.Mutex
	gen domain.Generator
	log *logger.Logger

	recipe   *domain.Recipe
	original []domain.Ingredient // snapshot backing HaveIngredientsChanged

	injectAmounts bool

	pending  map[int]string // index -> edited display text
	inflight map[int]uint64 // index -> generation token of the active markup call
	tokens   uint64
}

// NewSession opens a recipe for editing. Existing recipes default to not
// injecting amounts; fresh and AI-drafted ones turn it on via
// SetInjectAmounts.
func NewSession(recipe *domain.Recipe, gen domain.Generator, log *logger.Logger) *Session {
	return &Session{
		gen:      gen,
		log:      log,
		recipe:   recipe.Clone(),
		original: domain.CloneIngredients(recipe.Ingredients),
		pending:  make(map[int]string),
		inflight: make(map[int]uint64),
	}
}

// Recipe returns a deep copy of the working recipe, instructions in raw
// markup form, ready to hand to the collection for saving.
func (s *Session) Recipe() *domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipe.Clone()
}

// SetInjectAmounts flips the first-mention amount injection preference.
// This is ephemeral editor state, never persisted on the recipe.
func (s *Session) SetInjectAmounts(on bool) {
	s.mu.Lock()
	s.injectAmounts = on
	s.mu.Unlock()
}

// InjectAmounts reports the current injection preference.
func (s *Session) InjectAmounts() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.injectAmounts
}

// ── Display ──────────────────────────────────────────────────────

// Display renders every instruction for the UI: clean steps show their
// rendered raw text, steps with a pending edit show the edit verbatim.
func (s *Session) Display() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := markup.Render(s.recipe.Instructions, s.recipe.Ingredients, s.injectAmounts)
	for i, edit := range s.pending {
		if i >= 0 && i < len(out) {
			out[i] = edit
		}
	}
	return out
}

// DisplayStep renders a single step in isolation, pending edit included.
func (s *Session) DisplayStep(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.recipe.Instructions) {
		return "", domain.ErrNotFound
	}
	if edit, ok := s.pending[i]; ok {
		return edit, nil
	}
	return markup.RenderOne(s.recipe.Instructions[i], s.recipe.Ingredients, s.injectAmounts), nil
}

// ── Edit lifecycle ───────────────────────────────────────────────

// SetPending records replacement display text for step i (the Editing
// state). The raw instruction is untouched until Commit.
func (s *Session) SetPending(i int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.recipe.Instructions) {
		return domain.ErrNotFound
	}
	s.pending[i] = text
	return nil
}

// Commit resolves the pending edit for step i. If the edit trims equal
// to the clean rendering of the unedited step, it is discarded with no
// generator call. Otherwise the text goes through MarkupText and the
// returned markup replaces the raw step. On generator failure the
// pending edit stays visible so the user can retry; the instruction list
// is not mutated.
func (s *Session) Commit(ctx context.Context, i int) error {
	s.mu.Lock()
	edit, ok := s.pending[i]
	if !ok {
		s.mu.Unlock()
		return nil // already clean
	}

	clean := markup.RenderOne(s.recipe.Instructions[i], s.recipe.Ingredients, s.injectAmounts)
	if strings.TrimSpace(edit) == strings.TrimSpace(clean) {
		delete(s.pending, i)
		s.mu.Unlock()
		s.log.Debug("editor: step %d unchanged, edit discarded", i+1)
		return nil
	}

	// Entering Committing: stamp this request. A later commit on the
	// same index bumps the token and orphans this one.
	s.tokens++
	token := s.tokens
	s.inflight[i] = token
	ingredients := domain.CloneIngredients(s.recipe.Ingredients)
	s.mu.Unlock()

	marked, err := s.gen.MarkupText(ctx, edit, ingredients)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The step may have shifted while the request was in flight (a step
	// below it was removed), so the completion locates its slot by token,
	// not by the index captured above. No slot means the request was
	// superseded by a newer edit or its step was removed.
	at, ok := s.inflightIndex(token)
	if !ok {
		s.log.Debug("editor: step %d markup response is stale, discarded", i+1)
		return nil
	}
	delete(s.inflight, at)

	if err != nil {
		return fmt.Errorf("editor: markup step %d: %w", at+1, err)
	}

	s.recipe.Instructions[at] = marked
	delete(s.pending, at)
	s.log.Debug("editor: step %d committed", at+1)
	return nil
}

// inflightIndex finds the instruction slot whose active markup request
// carries the given token. Caller holds the lock.
func (s *Session) inflightIndex(token uint64) (int, bool) {
	for k, v := range s.inflight {
		if v == token {
			return k, true
		}
	}
	return 0, false
}

// MarkingUp returns the 1-based indices with a markup request in flight,
// for the status bar.
func (s *Session) MarkingUp() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, 0, len(s.inflight))
	for i := range s.inflight {
		out = append(out, i+1)
	}
	sort.Ints(out)
	return out
}

// ── Ingredients ──────────────────────────────────────────────────

// HaveIngredientsChanged reports whether the ingredient list differs
// from the snapshot taken when the recipe was opened or its instructions
// were last regenerated. Lists differ when their lengths differ or when
// the multiset of trimmed name|amount pairs differs. Used to gate the
// "regenerate instructions" offer, not as a hard precondition.
func (s *Session) HaveIngredientsChanged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ingredientsDiffer(s.recipe.Ingredients, s.original)
}

func ingredientsDiffer(current, original []domain.Ingredient) bool {
	if len(current) != len(original) {
		return true
	}
	counts := make(map[string]int, len(original))
	for _, ing := range original {
		counts[ingredientKey(ing)]++
	}
	for _, ing := range current {
		key := ingredientKey(ing)
		if counts[key] == 0 {
			return true
		}
		counts[key]--
	}
	return false
}

func ingredientKey(ing domain.Ingredient) string {
	return strings.TrimSpace(ing.Name) + "|" + strings.TrimSpace(ing.Amount)
}

// AddIngredient appends an ingredient row.
func (s *Session) AddIngredient(ing domain.Ingredient) {
	s.mu.Lock()
	s.recipe.Ingredients = append(s.recipe.Ingredients, ing)
	s.mu.Unlock()
}

// UpdateIngredient replaces the name/amount of the row at i.
func (s *Session) UpdateIngredient(i int, name, amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.recipe.Ingredients) {
		return domain.ErrNotFound
	}
	s.recipe.Ingredients[i].Name = name
	s.recipe.Ingredients[i].Amount = amount
	return nil
}

// RemoveIngredient deletes the row at i.
func (s *Session) RemoveIngredient(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.recipe.Ingredients) {
		return domain.ErrNotFound
	}
	s.recipe.Ingredients = append(s.recipe.Ingredients[:i], s.recipe.Ingredients[i+1:]...)
	return nil
}

// Ingredients returns a copy of the working ingredient list.
func (s *Session) Ingredients() []domain.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneIngredients(s.recipe.Ingredients)
}

// ── Steps ────────────────────────────────────────────────────────

// AddStep appends an empty instruction slot.
func (s *Session) AddStep() {
	s.mu.Lock()
	s.recipe.Instructions = append(s.recipe.Instructions, "")
	s.mu.Unlock()
}

// RemoveStep deletes the instruction at i. Pending edits and in-flight
// markers above it shift down; the removed slot's own state is dropped,
// which also orphans any request still in flight for it.
func (s *Session) RemoveStep(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.recipe.Instructions) {
		return domain.ErrNotFound
	}
	s.recipe.Instructions = append(s.recipe.Instructions[:i], s.recipe.Instructions[i+1:]...)

	s.pending = shiftDown(s.pending, i)
	s.inflight = shiftDown(s.inflight, i)
	return nil
}

// shiftDown drops key i and renumbers keys above it.
func shiftDown[V any](m map[int]V, i int) map[int]V {
	out := make(map[int]V, len(m))
	for k, v := range m {
		switch {
		case k < i:
			out[k] = v
		case k > i:
			out[k-1] = v
		}
	}
	return out
}

// StepCount returns the number of instruction slots.
func (s *Session) StepCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recipe.Instructions)
}

// ── Whole-recipe operations ──────────────────────────────────────

// RegenerateInstructions asks the generator to rewrite the steps for the
// current ingredient list. On success the instruction list is replaced,
// pending edits are cleared, and the ingredient snapshot resets to now.
// On failure the recipe is untouched.
func (s *Session) RegenerateInstructions(ctx context.Context) error {
	s.mu.Lock()
	draft := &domain.RecipeDraft{
		Title:           s.recipe.Title,
		Category:        s.recipe.Category,
		Description:     s.recipe.Description,
		Ingredients:     domain.CloneIngredients(s.recipe.Ingredients),
		Instructions:    append([]string(nil), s.recipe.Instructions...),
		Calories:        s.recipe.Calories,
		CookTimeMinutes: s.recipe.CookTimeMinutes,
	}
	s.mu.Unlock()

	instructions, err := s.gen.RegenerateInstructions(ctx, draft)
	if err != nil {
		return fmt.Errorf("editor: regenerate: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipe.Instructions = instructions
	s.original = domain.CloneIngredients(s.recipe.Ingredients)
	s.pending = make(map[int]string)
	s.inflight = make(map[int]uint64)
	s.log.Info("editor: regenerated %d instructions for %q", len(instructions), s.recipe.Title)
	return nil
}

// ApplyDraft loads a generated draft into the session, keeping the
// recipe's identity and image unless the draft's content replaces them.
// The ingredient snapshot resets and amount injection turns on, matching
// how a freshly drafted recipe is reviewed.
func (s *Session) ApplyDraft(draft *domain.RecipeDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipe.Title = draft.Title
	s.recipe.Category = draft.Category
	s.recipe.Description = draft.Description
	s.recipe.Ingredients = domain.CloneIngredients(draft.Ingredients)
	s.recipe.Instructions = append([]string(nil), draft.Instructions...)
	s.recipe.Calories = draft.Calories
	s.recipe.CookTimeMinutes = draft.CookTimeMinutes

	s.original = domain.CloneIngredients(draft.Ingredients)
	s.pending = make(map[int]string)
	s.inflight = make(map[int]uint64)
	s.injectAmounts = true
}

// SetTitle, SetCategory, SetDescription, SetCalories, SetCookTime and
// SetImageRef update scalar fields on the working copy.

func (s *Session) SetTitle(v string) { s.setField(func(r *domain.Recipe) { r.Title = v }) }

func (s *Session) SetCategory(v string) { s.setField(func(r *domain.Recipe) { r.Category = v }) }

func (s *Session) SetDescription(v string) { s.setField(func(r *domain.Recipe) { r.Description = v }) }

func (s *Session) SetCalories(v int) { s.setField(func(r *domain.Recipe) { r.Calories = v }) }

func (s *Session) SetCookTime(v int) { s.setField(func(r *domain.Recipe) { r.CookTimeMinutes = v }) }

func (s *Session) SetImageRef(v string) { s.setField(func(r *domain.Recipe) { r.ImageRef = v }) }

func (s *Session) setField(f func(*domain.Recipe)) {
	s.mu.Lock()
	f(s.recipe)
	s.mu.Unlock()
}
