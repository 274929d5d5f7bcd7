package gpt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// chatServer returns an httptest server that always replies with the
// given assistant content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newAgent(t *testing.T, srv *httptest.Server) *Agent {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	return NewAgent(NewClient(srv.URL, "test-key", log), log)
}

func TestGenerateRecipeParsesDraft(t *testing.T) {
	draft := `{
		"title": "Pancakes",
		"category": "Desserts",
		"description": "Fluffy.",
		"ingredients": [{"name": "Flour", "amount": "200 g"}, {"name": "Milk", "amount": "300 ml"}],
		"instructions": ["Mix {{Flour}} and {{Milk}}."],
		"calories": 400,
		"cookTime": 25
	}`
	srv := chatServer(t, "```json\n"+draft+"\n```")
	defer srv.Close()

	got, err := newAgent(t, srv).GenerateRecipe(context.Background(), "pancakes", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Title != "Pancakes" || got.Calories != 400 || got.CookTimeMinutes != 25 {
		t.Errorf("unexpected draft: %+v", got)
	}
	if len(got.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(got.Ingredients))
	}
	if got.Ingredients[0].ID == "" || got.Ingredients[0].ID == got.Ingredients[1].ID {
		t.Error("ingredient IDs must be assigned locally and be unique")
	}
	if got.Instructions[0] != "Mix {{Flour}} and {{Milk}}." {
		t.Errorf("instructions must stay raw markup: %q", got.Instructions[0])
	}
}

func TestGenerateRecipeRejectsIncompleteDraft(t *testing.T) {
	srv := chatServer(t, `{"title": "", "ingredients": [], "instructions": []}`)
	defer srv.Close()

	_, err := newAgent(t, srv).GenerateRecipe(context.Background(), "x", false)
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestRegenerateInstructions(t *testing.T) {
	srv := chatServer(t, `{"instructions": ["Whisk the {{Eggs}}.", "Fold in {{Flour}}."]}`)
	defer srv.Close()

	got, err := newAgent(t, srv).RegenerateInstructions(context.Background(), &domain.RecipeDraft{
		Title:       "Cake",
		Ingredients: []domain.Ingredient{{Name: "Eggs", Amount: "2"}, {Name: "Flour", Amount: "100 g"}},
	})
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if len(got) != 2 || got[0] != "Whisk the {{Eggs}}." {
		t.Errorf("unexpected instructions: %q", got)
	}
}

func TestRegenerateInstructionsEmptyIsError(t *testing.T) {
	srv := chatServer(t, `{"instructions": []}`)
	defer srv.Close()

	_, err := newAgent(t, srv).RegenerateInstructions(context.Background(), &domain.RecipeDraft{Title: "Cake"})
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestMarkupTextSuccess(t *testing.T) {
	srv := chatServer(t, "Add the {{Flour}} slowly.")
	defer srv.Close()

	got, err := newAgent(t, srv).MarkupText(context.Background(), "Add the flour slowly.",
		[]domain.Ingredient{{Name: "Flour", Amount: "200 g"}})
	if err != nil {
		t.Fatalf("markup: %v", err)
	}
	if got != "Add the {{Flour}} slowly." {
		t.Errorf("got %q", got)
	}
}

func TestMarkupTextAbsorbsFailures(t *testing.T) {
	// Server that always errors.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	agent := newAgent(t, srv)
	ings := []domain.Ingredient{{Name: "Flour"}}

	tests := []struct {
		name  string
		text  string
		ings  []domain.Ingredient
		agent *Agent
	}{
		{"transport error", "Add the flour.", ings, agent},
		{"blank input", "   ", ings, agent},
		{"no ingredients", "Add the flour.", nil, agent},
		{"nameless ingredients", "Add the flour.", []domain.Ingredient{{Name: ""}}, agent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.agent.MarkupText(context.Background(), tt.text, tt.ings)
			if err != nil {
				t.Fatalf("MarkupText must not fail outward: %v", err)
			}
			if got != tt.text {
				t.Errorf("got %q, want the original input %q", got, tt.text)
			}
		})
	}
}

func TestMarkupTextEmptyReplyFallsBack(t *testing.T) {
	srv := chatServer(t, "")
	defer srv.Close()

	got, err := newAgent(t, srv).MarkupText(context.Background(), "Add the flour.",
		[]domain.Ingredient{{Name: "Flour"}})
	if err != nil {
		t.Fatalf("markup: %v", err)
	}
	if got != "Add the flour." {
		t.Errorf("got %q", got)
	}
}

func TestGenerateImage(t *testing.T) {
	imgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": "aGVsbG8="}},
		})
	}))
	defer imgSrv.Close()

	log := logger.New(logger.LevelOff, nil)
	agent := NewAgent(NewClient("http://unused", "k", log, WithImageEndpoint(imgSrv.URL)), log)

	uri, err := agent.GenerateImage(context.Background(), "borscht")
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("expected a data URI, got %q", uri)
	}
}

func TestGenerateImageErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "content policy block",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{"code": "content_policy_violation", "message": "blocked"},
				})
			},
			wantErr: domain.ErrImageBlocked,
		},
		{
			name: "no image in response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data": []}`)
			},
			wantErr: domain.ErrNoImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			log := logger.New(logger.LevelOff, nil)
			agent := NewAgent(NewClient("http://unused", "k", log, WithImageEndpoint(srv.URL)), log)

			_, err := agent.GenerateImage(context.Background(), "x")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"{\"a\":1}", `{"a":1}`},
		{"```\ntext\n```", "text"},
		{"  plain  ", "plain"},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
