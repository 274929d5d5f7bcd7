package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// fakeGenerator counts calls and lets tests script MarkupText behavior.
type fakeGenerator struct {
	mu          sync.Mutex
	markupCalls int
	regenCalls  int

	markupFn func(text string, ingredients []domain.Ingredient) (string, error)
	regenFn  func(*domain.RecipeDraft) ([]string, error)
}

func (f *fakeGenerator) GenerateRecipe(ctx context.Context, prompt string, grounded bool) (*domain.RecipeDraft, error) {
	return nil, errors.New("not scripted")
}

func (f *fakeGenerator) RegenerateInstructions(ctx context.Context, r *domain.RecipeDraft) ([]string, error) {
	f.mu.Lock()
	f.regenCalls++
	f.mu.Unlock()
	if f.regenFn != nil {
		return f.regenFn(r)
	}
	return nil, domain.ErrEmptyResponse
}

func (f *fakeGenerator) MarkupText(ctx context.Context, text string, ingredients []domain.Ingredient) (string, error) {
	f.mu.Lock()
	f.markupCalls++
	f.mu.Unlock()
	if f.markupFn != nil {
		return f.markupFn(text, ingredients)
	}
	return text, nil
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "", domain.ErrNoImage
}

func (f *fakeGenerator) markups() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.markupCalls
}

func testRecipe() *domain.Recipe {
	return &domain.Recipe{
		ID:    "r1",
		Title: "Pancakes",
		Ingredients: []domain.Ingredient{
			{ID: "i1", Name: "Flour", Amount: "200 g"},
			{ID: "i2", Name: "Milk", Amount: "300 ml"},
		},
		Instructions: []string{
			"Mix the {{Flour}} and {{Milk}}.",
			"Fry until golden.",
		},
	}
}

func newTestSession(gen domain.Generator) *Session {
	return NewSession(testRecipe(), gen, logger.New(logger.LevelOff, nil))
}

func TestDisplayRendersCleanSteps(t *testing.T) {
	s := newTestSession(&fakeGenerator{})

	got := s.Display()
	want := []string{"Mix the Flour and Milk.", "Fry until golden."}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d: got %q, want %q", i+1, got[i], want[i])
		}
	}

	s.SetInjectAmounts(true)
	got = s.Display()
	if got[0] != "Mix the Flour (200 g) and Milk (300 ml)." {
		t.Errorf("inject on: got %q", got[0])
	}
}

func TestDisplayOverlaysPendingEdit(t *testing.T) {
	s := newTestSession(&fakeGenerator{})

	if err := s.SetPending(1, "Fry until deeply golden."); err != nil {
		t.Fatal(err)
	}
	got := s.Display()
	if got[1] != "Fry until deeply golden." {
		t.Errorf("pending edit not shown: %q", got[1])
	}
	// Raw instruction untouched while editing.
	if s.Recipe().Instructions[1] != "Fry until golden." {
		t.Error("raw instruction mutated before commit")
	}
}

func TestCommitUnchangedTextSkipsGenerator(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(gen)

	// The edit matches the clean rendering, modulo surrounding space.
	if err := s.SetPending(0, "  Mix the Flour and Milk.  "); err != nil {
		t.Fatal(err)
	}
	if err := s.Commit(context.Background(), 0); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if gen.markups() != 0 {
		t.Errorf("generator called %d times for a no-op commit", gen.markups())
	}
	if got := s.Recipe().Instructions[0]; got != "Mix the {{Flour}} and {{Milk}}." {
		t.Errorf("raw instruction changed: %q", got)
	}
	if got, _ := s.DisplayStep(0); got != "Mix the Flour and Milk." {
		t.Errorf("pending edit not discarded: %q", got)
	}
}

func TestCommitChangedTextReplacesRawInstruction(t *testing.T) {
	gen := &fakeGenerator{
		markupFn: func(text string, _ []domain.Ingredient) (string, error) {
			return "Gently mix the {{Flour}} and {{Milk}}.", nil
		},
	}
	s := newTestSession(gen)

	if err := s.SetPending(0, "Gently mix the flour and milk."); err != nil {
		t.Fatal(err)
	}
	if err := s.Commit(context.Background(), 0); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if gen.markups() != 1 {
		t.Errorf("expected exactly one markup call, got %d", gen.markups())
	}
	if got := s.Recipe().Instructions[0]; got != "Gently mix the {{Flour}} and {{Milk}}." {
		t.Errorf("raw instruction not replaced: %q", got)
	}
	if len(s.MarkingUp()) != 0 {
		t.Errorf("in-flight markers leaked: %v", s.MarkingUp())
	}
}

func TestCommitFailureKeepsPendingEdit(t *testing.T) {
	gen := &fakeGenerator{
		markupFn: func(text string, _ []domain.Ingredient) (string, error) {
			return "", errors.New("network down")
		},
	}
	s := newTestSession(gen)

	if err := s.SetPending(0, "Something new."); err != nil {
		t.Fatal(err)
	}
	if err := s.Commit(context.Background(), 0); err == nil {
		t.Fatal("expected commit error")
	}
	if got := s.Recipe().Instructions[0]; got != "Mix the {{Flour}} and {{Milk}}." {
		t.Errorf("failed commit mutated the instruction list: %q", got)
	}
	if got, _ := s.DisplayStep(0); got != "Something new." {
		t.Errorf("pending edit lost after failure: %q", got)
	}
}

func TestStaleMarkupResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	first := true

	gen := &fakeGenerator{}
	gen.markupFn = func(text string, _ []domain.Ingredient) (string, error) {
		if first {
			first = false
			close(started)
			<-release
			return "STALE {{Flour}}.", nil
		}
		return "Fresh {{Flour}}.", nil
	}
	s := newTestSession(gen)
	ctx := context.Background()

	if err := s.SetPending(0, "old edit"); err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- s.Commit(ctx, 0) }()
	<-started

	// A newer edit commits while the first request is still in flight.
	if err := s.SetPending(0, "new edit"); err != nil {
		t.Fatal(err)
	}
	if err := s.Commit(ctx, 0); err != nil {
		t.Fatalf("second commit: %v", err)
	}

	close(release)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("first commit: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first commit never returned")
	}

	if got := s.Recipe().Instructions[0]; got != "Fresh {{Flour}}." {
		t.Errorf("stale response won: %q", got)
	}
}

func TestRemoveStepBelowInFlightCommit(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	gen := &fakeGenerator{
		markupFn: func(text string, _ []domain.Ingredient) (string, error) {
			close(started)
			<-release
			return "Fry until {{Flour}}-golden.", nil
		},
	}
	s := newTestSession(gen)
	ctx := context.Background()

	if err := s.SetPending(1, "Fry until flour-golden."); err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- s.Commit(ctx, 1) }()
	<-started

	// Removing the step below shifts the committing step down to slot 0.
	if err := s.RemoveStep(0); err != nil {
		t.Fatalf("remove: %v", err)
	}

	close(release)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("commit never returned")
	}

	// The response lands in the step's new slot and the in-flight marker
	// clears, so saving is possible again.
	if got := s.Recipe().Instructions[0]; got != "Fry until {{Flour}}-golden." {
		t.Errorf("markup did not follow the shifted step: %q", got)
	}
	if busy := s.MarkingUp(); len(busy) != 0 {
		t.Errorf("in-flight markers leaked after the step shifted: %v", busy)
	}
}

func TestRemoveCommittingStepOrphansItsRequest(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	gen := &fakeGenerator{
		markupFn: func(text string, _ []domain.Ingredient) (string, error) {
			close(started)
			<-release
			return "ORPHANED {{Flour}}.", nil
		},
	}
	s := newTestSession(gen)
	ctx := context.Background()

	if err := s.SetPending(0, "A different first step."); err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- s.Commit(ctx, 0) }()
	<-started

	if err := s.RemoveStep(0); err != nil {
		t.Fatalf("remove: %v", err)
	}

	close(release)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("commit never returned")
	}

	if got := s.Recipe().Instructions[0]; got != "Fry until golden." {
		t.Errorf("orphaned response mutated a surviving step: %q", got)
	}
	if busy := s.MarkingUp(); len(busy) != 0 {
		t.Errorf("in-flight markers leaked for a removed step: %v", busy)
	}
}

func TestHaveIngredientsChanged(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Session)
		want   bool
	}{
		{"untouched", func(s *Session) {}, false},
		{"amount edited", func(s *Session) { s.UpdateIngredient(0, "Flour", "250 g") }, true},
		{"row added", func(s *Session) { s.AddIngredient(domain.Ingredient{Name: "Salt"}) }, true},
		{"row removed", func(s *Session) { s.RemoveIngredient(1) }, true},
		{
			// Same multiset in a different order is not a change.
			"reordered",
			func(s *Session) {
				s.UpdateIngredient(0, "Milk", "300 ml")
				s.UpdateIngredient(1, "Flour", "200 g")
			},
			false,
		},
		{
			// Whitespace-only differences are not a change.
			"padded",
			func(s *Session) { s.UpdateIngredient(0, " Flour ", " 200 g ") },
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(&fakeGenerator{})
			tt.mutate(s)
			if got := s.HaveIngredientsChanged(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegenerateInstructionsReplacesAndResetsSnapshot(t *testing.T) {
	gen := &fakeGenerator{
		regenFn: func(r *domain.RecipeDraft) ([]string, error) {
			return []string{"New step with {{Flour}}."}, nil
		},
	}
	s := newTestSession(gen)

	s.UpdateIngredient(0, "Flour", "500 g")
	if !s.HaveIngredientsChanged() {
		t.Fatal("precondition: ingredients should read as changed")
	}

	if err := s.RegenerateInstructions(context.Background()); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if got := s.Recipe().Instructions; len(got) != 1 || got[0] != "New step with {{Flour}}." {
		t.Errorf("instructions not replaced: %q", got)
	}
	if s.HaveIngredientsChanged() {
		t.Error("snapshot was not reset after regeneration")
	}
}

func TestRegenerateFailureLeavesRecipeUntouched(t *testing.T) {
	s := newTestSession(&fakeGenerator{}) // regenFn nil -> ErrEmptyResponse

	before := s.Recipe().Instructions
	err := s.RegenerateInstructions(context.Background())
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
	after := s.Recipe().Instructions
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("step %d changed on failure: %q -> %q", i+1, before[i], after[i])
		}
	}
}

func TestRemoveStepShiftsPendingEdits(t *testing.T) {
	s := newTestSession(&fakeGenerator{})
	s.AddStep()
	if err := s.SetPending(2, "edit on the last step"); err != nil {
		t.Fatal(err)
	}

	if err := s.RemoveStep(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got, _ := s.DisplayStep(1); got != "edit on the last step" {
		t.Errorf("pending edit did not follow its step: %q", got)
	}
	if s.StepCount() != 2 {
		t.Errorf("step count = %d", s.StepCount())
	}
}

func TestApplyDraft(t *testing.T) {
	s := newTestSession(&fakeGenerator{})

	s.ApplyDraft(&domain.RecipeDraft{
		Title:           "Crepes",
		Category:        "Desserts",
		Description:     "Thin.",
		Ingredients:     []domain.Ingredient{{ID: "x", Name: "Eggs", Amount: "3"}},
		Instructions:    []string{"Whisk the {{Eggs}}."},
		Calories:        300,
		CookTimeMinutes: 20,
	})

	r := s.Recipe()
	if r.Title != "Crepes" || len(r.Ingredients) != 1 || r.Instructions[0] != "Whisk the {{Eggs}}." {
		t.Errorf("draft not applied: %+v", r)
	}
	if r.ID != "r1" {
		t.Errorf("recipe identity lost: %q", r.ID)
	}
	if !s.InjectAmounts() {
		t.Error("amount injection should turn on for a fresh draft")
	}
	if s.HaveIngredientsChanged() {
		t.Error("snapshot should reset to the draft's ingredients")
	}
}
