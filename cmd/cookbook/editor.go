package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/editor"
)

// editRecipe runs the in-recipe editing loop. It owns the input channel
// until the user saves or discards.
func (a *cliApp) editRecipe(ctx context.Context, recipe *domain.Recipe) {
	a.editRecipeWithDraft(ctx, recipe, nil)
}

// editRecipeWithDraft opens the editor with an AI draft already applied.
func (a *cliApp) editRecipeWithDraft(ctx context.Context, recipe *domain.Recipe, draft *domain.RecipeDraft) {
	var gen domain.Generator = a.agent
	if a.agent == nil {
		gen = offlineGenerator{}
	}
	sess := editor.NewSession(recipe, gen, a.log)
	if draft != nil {
		sess.ApplyDraft(draft)
	}

	a.showRecipeDetail(sess)
	a.ui.PrintHint("Editing. Type 'help' for editor commands, 'save' or 'discard' to leave.")

	uiCh := a.ui.InputChan()
	for {
		var input string
		var ok bool
		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		cmd, rest := splitCommand(input)
		switch cmd {
		case "show":
			a.showRecipeDetail(sess)

		case "title":
			sess.SetTitle(rest)
			a.ui.PrintChat("Title set.")
		case "category", "cat":
			a.setCategory(sess, rest)
		case "desc", "description":
			sess.SetDescription(rest)
			a.ui.PrintChat("Description set.")
		case "cal", "calories":
			a.setIntField(rest, "calories", sess.SetCalories)
		case "time", "cooktime":
			a.setIntField(rest, "cook time (minutes)", sess.SetCookTime)

		case "image", "img":
			a.setImage(ctx, sess, rest)

		case "ing", "ingredient":
			a.ingredientCommand(sess, rest)

		case "step":
			a.stepCommand(ctx, sess, rest)

		case "amounts":
			switch strings.ToLower(rest) {
			case "on":
				sess.SetInjectAmounts(true)
				a.ui.PrintChat("Showing amounts at first mention.")
				a.showInstructions(sess)
			case "off":
				sess.SetInjectAmounts(false)
				a.ui.PrintChat("Showing bare ingredient names.")
				a.showInstructions(sess)
			default:
				a.ui.PrintHint("Usage: amounts on|off")
			}

		case "regen", "regenerate":
			a.regenerate(ctx, sess)

		case "save":
			if a.saveSession(ctx, sess) {
				return
			}

		case "discard", "cancel":
			a.ui.PrintChat("Changes discarded.")
			return

		case "help":
			a.showEditorHelp()

		default:
			a.ui.PrintHint(fmt.Sprintf("Unknown editor command %q. Type 'help'.", cmd))
		}
	}
}

func splitCommand(input string) (cmd, rest string) {
	parts := strings.SplitN(input, " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return cmd, rest
}

func (a *cliApp) setIntField(rest, label string, set func(int)) {
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		a.ui.PrintHint(fmt.Sprintf("%q is not a valid %s.", rest, label))
		return
	}
	set(n)
	a.ui.PrintChat(fmt.Sprintf("Set %s to %d.", label, n))
}

func (a *cliApp) setCategory(sess *editor.Session, name string) {
	if name == "" {
		a.ui.PrintHint("Usage: category <name> — see 'categories' at the top level.")
		return
	}
	sess.SetCategory(name)
	a.ui.PrintChat(fmt.Sprintf("Category set to %q (created on save if new).", name))
}

func (a *cliApp) setImage(ctx context.Context, sess *editor.Session, rest string) {
	switch {
	case rest == "generate":
		if a.agent == nil {
			a.ui.PrintHint("AI is disabled — paste an image URL instead: image <url>")
			return
		}
		r := sess.Recipe()
		prompt := r.Title
		if r.Description != "" {
			prompt += " — " + r.Description
		}
		a.ui.PrintHint("Generating an image...")
		done := a.ui.Activity().Begin("generating image")
		ref, err := a.agent.GenerateImage(ctx, prompt)
		done()
		if err != nil {
			a.ui.PrintUrgent(fmt.Sprintf("Image generation failed: %v", err))
			return
		}
		sess.SetImageRef(ref)
		a.ui.PrintChat("Image generated and attached.")
	case rest != "":
		sess.SetImageRef(rest)
		a.ui.PrintChat("Image set.")
	default:
		a.ui.PrintHint("Usage: image <url> or image generate")
	}
}

// ── Ingredients ──────────────────────────────────────────────────

// ingredientCommand handles "ing add Name | Amount", "ing edit N Name | Amount",
// and "ing del N".
func (a *cliApp) ingredientCommand(sess *editor.Session, rest string) {
	sub, args := splitCommand(rest)
	switch sub {
	case "add":
		name, amount := splitNameAmount(args)
		if name == "" {
			a.ui.PrintHint("Usage: ing add <name> | <amount>")
			return
		}
		sess.AddIngredient(domain.Ingredient{ID: uuid.NewString(), Name: name, Amount: amount})
		a.ui.PrintChat(fmt.Sprintf("Added %s.", name))
		a.showIngredients(sess)

	case "edit":
		idxStr, rem := splitCommand(args)
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			a.ui.PrintHint("Usage: ing edit <n> <name> | <amount>")
			return
		}
		name, amount := splitNameAmount(rem)
		if err := sess.UpdateIngredient(idx-1, name, amount); err != nil {
			a.ui.PrintHint(fmt.Sprintf("No ingredient [%d].", idx))
			return
		}
		a.showIngredients(sess)

	case "del", "delete", "rm":
		idx, err := strconv.Atoi(args)
		if err != nil {
			a.ui.PrintHint("Usage: ing del <n>")
			return
		}
		if err := sess.RemoveIngredient(idx - 1); err != nil {
			a.ui.PrintHint(fmt.Sprintf("No ingredient [%d].", idx))
			return
		}
		a.showIngredients(sess)

	default:
		a.ui.PrintHint("Usage: ing add|edit|del ...")
	}
}

// splitNameAmount splits "Flour | 200 g" into name and amount.
// Without a pipe the whole string is the name.
func splitNameAmount(s string) (name, amount string) {
	parts := strings.SplitN(s, "|", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		amount = strings.TrimSpace(parts[1])
	}
	return name, amount
}

// ── Steps ────────────────────────────────────────────────────────

// stepCommand handles "step add", "step del N", and "step N <new text>".
// Editing a step replaces its display text; the raw markup is re-derived
// in the background so typing stays responsive.
func (a *cliApp) stepCommand(ctx context.Context, sess *editor.Session, rest string) {
	sub, args := splitCommand(rest)
	switch sub {
	case "add":
		sess.AddStep()
		a.ui.PrintChat(fmt.Sprintf("Added step %d.", sess.StepCount()))
		return
	case "del", "delete", "rm":
		idx, err := strconv.Atoi(args)
		if err != nil {
			a.ui.PrintHint("Usage: step del <n>")
			return
		}
		if err := sess.RemoveStep(idx - 1); err != nil {
			a.ui.PrintHint(fmt.Sprintf("No step [%d].", idx))
			return
		}
		a.showInstructions(sess)
		return
	}

	idx, err := strconv.Atoi(sub)
	if err != nil {
		a.ui.PrintHint("Usage: step add | step del <n> | step <n> <new text>")
		return
	}
	if args == "" {
		text, err := sess.DisplayStep(idx - 1)
		if err != nil {
			a.ui.PrintHint(fmt.Sprintf("No step [%d].", idx))
			return
		}
		a.ui.PrintBody(fmt.Sprintf("%d. %s", idx, text))
		return
	}

	if err := sess.SetPending(idx-1, args); err != nil {
		a.ui.PrintHint(fmt.Sprintf("No step [%d].", idx))
		return
	}
	a.commitStep(ctx, sess, idx-1)
}

// commitStep re-derives markup for an edited step in the background.
func (a *cliApp) commitStep(ctx context.Context, sess *editor.Session, i int) {
	done := a.ui.Activity().Begin(fmt.Sprintf("marking up step %d", i+1))
	go func() {
		defer done()
		if err := sess.Commit(ctx, i); err != nil {
			a.ui.PrintUrgent(fmt.Sprintf("Step %d markup failed — your text is kept, retry with 'step %d <text>': %v", i+1, i+1, err))
			return
		}
	}()
}

// ── Regeneration / saving ────────────────────────────────────────

func (a *cliApp) regenerate(ctx context.Context, sess *editor.Session) {
	if a.agent == nil {
		a.ui.PrintHint("AI is disabled — edit the steps by hand with 'step <n> <text>'.")
		return
	}
	if !sess.HaveIngredientsChanged() {
		a.ui.PrintHint("Ingredients haven't changed since you opened the recipe — nothing to reconcile.")
		return
	}

	a.ui.PrintHint("Rewriting instructions to match the new ingredients...")
	done := a.ui.Activity().Begin("regenerating steps")
	err := sess.RegenerateInstructions(ctx)
	done()
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Regeneration failed, instructions unchanged: %v", err))
		return
	}
	a.ui.PrintChat("Instructions rewritten.")
	a.showInstructions(sess)
}

// saveSession persists the edited recipe. Returns true when the editor
// should close.
func (a *cliApp) saveSession(ctx context.Context, sess *editor.Session) bool {
	if busy := sess.MarkingUp(); len(busy) > 0 {
		a.ui.PrintHint(fmt.Sprintf("Still marking up step(s) %v — try 'save' again in a moment.", busy))
		return false
	}
	recipe := sess.Recipe()
	if strings.TrimSpace(recipe.Title) == "" {
		a.ui.PrintHint("Give the recipe a title first: title <text>")
		return false
	}
	if err := a.collection.Save(ctx, recipe); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Save failed: %v", err))
		return false
	}
	a.ui.PrintChat(fmt.Sprintf("Saved %q.", recipe.Title))
	return true
}

// ── Display ──────────────────────────────────────────────────────

func (a *cliApp) showRecipeDetail(sess *editor.Session) {
	r := sess.Recipe()
	a.ui.PrintHeading(fmt.Sprintf("=== %s ===", orPlaceholder(r.Title, "(untitled)")))
	if r.Description != "" {
		a.ui.PrintBody(r.Description)
	}
	meta := r.Category
	if r.Calories > 0 {
		meta += fmt.Sprintf(" · %d kcal", r.Calories)
	}
	if r.CookTimeMinutes > 0 {
		meta += fmt.Sprintf(" · %d min", r.CookTimeMinutes)
	}
	a.ui.PrintHint(meta)
	if r.ImageRef != "" {
		a.ui.PrintHint("image: " + truncateStr(r.ImageRef, 60))
	}
	a.ui.Println("")
	a.showIngredients(sess)
	a.ui.Println("")
	a.showInstructions(sess)
}

func (a *cliApp) showIngredients(sess *editor.Session) {
	a.ui.PrintHeading("Ingredients:")
	ings := sess.Ingredients()
	if len(ings) == 0 {
		a.ui.PrintHint("  (none)")
		return
	}
	for i, ing := range ings {
		line := fmt.Sprintf("  [%d] %s", i+1, orPlaceholder(ing.Name, "(unnamed)"))
		if ing.Amount != "" {
			line += " — " + ing.Amount
		}
		a.ui.PrintBody(line)
	}
}

func (a *cliApp) showInstructions(sess *editor.Session) {
	a.ui.PrintHeading("Steps:")
	steps := sess.Display()
	if len(steps) == 0 {
		a.ui.PrintHint("  (none — 'step add' to start)")
		return
	}
	busy := make(map[int]bool)
	for _, n := range sess.MarkingUp() {
		busy[n] = true
	}
	for i, text := range steps {
		line := fmt.Sprintf("  %d. %s", i+1, orPlaceholder(text, "(empty)"))
		if busy[i+1] {
			line += "  ⋯ marking up"
		}
		a.ui.PrintBody(line)
	}
}

func (a *cliApp) showEditorHelp() {
	a.ui.PrintHeading("Editor commands:")
	a.ui.PrintBody("  show                      Show the recipe")
	a.ui.PrintBody("  title / desc <text>       Set the title or description")
	a.ui.PrintBody("  category <name>           Set the category")
	a.ui.PrintBody("  cal / time <n>            Set calories or cook time")
	a.ui.PrintBody("  image <url>               Set the image")
	a.ui.PrintBody("  image generate            Let the AI draw one")
	a.ui.PrintBody("  ing add <name> | <amt>    Add an ingredient")
	a.ui.PrintBody("  ing edit <n> <name> | <amt>")
	a.ui.PrintBody("  ing del <n>               Remove an ingredient")
	a.ui.PrintBody("  step add / step del <n>   Add or remove a step")
	a.ui.PrintBody("  step <n>                  Show one step")
	a.ui.PrintBody("  step <n> <text>           Rewrite a step (markup re-derived in background)")
	a.ui.PrintBody("  amounts on|off            Toggle amounts at first ingredient mention")
	a.ui.PrintBody("  regen                     Rewrite steps after ingredient changes (AI)")
	a.ui.PrintBody("  save / discard            Leave the editor")
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// ── Offline generator ────────────────────────────────────────────

// offlineGenerator stands in when no GPT credentials are configured.
// Markup derivation degrades to keeping the text exactly as typed;
// drafting and regeneration are unavailable.
type offlineGenerator struct{}

var _ domain.Generator = offlineGenerator{}

func (offlineGenerator) GenerateRecipe(ctx context.Context, prompt string, useWebGrounding bool) (*domain.RecipeDraft, error) {
	return nil, fmt.Errorf("AI assistant is not configured")
}

func (offlineGenerator) RegenerateInstructions(ctx context.Context, recipe *domain.RecipeDraft) ([]string, error) {
	return nil, fmt.Errorf("AI assistant is not configured")
}

func (offlineGenerator) MarkupText(ctx context.Context, displayText string, ingredients []domain.Ingredient) (string, error) {
	return displayText, nil
}

func (offlineGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("AI assistant is not configured")
}
