package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/collection"
	"github.com/hammamikhairi/cookbook/internal/conversation"
	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/export"
	"github.com/hammamikhairi/cookbook/internal/gpt"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/storage"
)

type cliApp struct {
	collection *collection.Service
	styles     *storage.StyleStore
	exporter   *export.Generator
	exportDir  string
	parser     domain.IntentParser
	notifier   *conversation.CLINotifier
	agent      *gpt.Agent // nil when AI is disabled
	log        *logger.Logger
	ui         *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	a.ui.PrintChat("Welcome to your cookbook.")
	a.ui.Println("")
	a.showRecipes()

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

		intent, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		if quit := a.handleIntent(ctx, intent); quit {
			return
		}
	}
}

// handleIntent dispatches one top-level intent. Returns true when the
// app should exit.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentListRecipes:
		a.showRecipes()
	case domain.IntentOpenRecipe:
		a.openRecipe(ctx, intent.Payload)
	case domain.IntentNewRecipe:
		a.newRecipe(ctx, intent.Payload)
	case domain.IntentDeleteRecipe:
		a.deleteRecipe(ctx, intent.Payload)
	case domain.IntentExport:
		a.export(ctx)
	case domain.IntentCategories:
		a.showCategories()
	case domain.IntentAddCategory:
		a.addCategory(ctx, intent.Payload)
	case domain.IntentDeleteCategory:
		a.deleteCategory(ctx, intent.Payload)
	case domain.IntentStyle:
		a.style(ctx, intent.Payload)
	case domain.IntentQuit:
		a.ui.PrintChat("Happy cooking!")
		return true
	case domain.IntentUnknown:
		a.ui.PrintHint(fmt.Sprintf("Didn't catch that (%q). Type 'help' for commands.", intent.Payload))
	}
	return false
}

// ── Collection handlers ──────────────────────────────────────────

func (a *cliApp) showRecipes() {
	recipes := a.collection.Recipes()
	if len(recipes) == 0 {
		a.ui.PrintHint("No recipes yet. Type 'new <idea>' to create one.")
		return
	}

	a.ui.PrintHeading("Your recipes:")
	a.ui.Println("")
	for i, r := range recipes {
		meta := r.Category
		if r.Calories > 0 {
			meta += fmt.Sprintf(" · %d kcal", r.Calories)
		}
		if r.CookTimeMinutes > 0 {
			meta += fmt.Sprintf(" · %d min", r.CookTimeMinutes)
		}
		a.ui.PrintBody(fmt.Sprintf("[%d] %s", i+1, r.Title))
		a.ui.PrintHint("    " + meta)
	}
	a.ui.Println("")
	a.ui.PrintChat("Open a recipe by number, or type 'help' for commands.")
}

func (a *cliApp) openRecipe(ctx context.Context, payload string) {
	idx, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		a.ui.PrintHint(fmt.Sprintf("%q is not a recipe number. Type 'list' to see them.", payload))
		return
	}
	recipe, err := a.collection.At(idx - 1)
	if err != nil {
		a.ui.PrintHint(fmt.Sprintf("No recipe [%d]. Type 'list' to see them.", idx))
		return
	}
	a.editRecipe(ctx, recipe)
}

func (a *cliApp) newRecipe(ctx context.Context, prompt string) {
	recipe := a.collection.NewRecipe()

	var draft *domain.RecipeDraft
	if prompt != "" && a.agent == nil {
		a.ui.PrintHint("AI is disabled, starting from a blank recipe instead.")
	}
	if prompt != "" && a.agent != nil {
		a.ui.PrintHint("Drafting a recipe for: " + prompt)
		done := a.ui.Activity().Begin("drafting recipe")
		d, err := a.agent.GenerateRecipe(ctx, prompt, true)
		done()
		if err != nil {
			a.log.Error("draft generation failed: %v", err)
			a.ui.PrintUrgent("Couldn't draft that recipe. Starting from a blank one.")
		} else {
			draft = d
			if draft.Category == "" {
				draft.Category = recipe.Category
			}
		}
	}

	a.editRecipeWithDraft(ctx, recipe, draft)
}

func (a *cliApp) deleteRecipe(ctx context.Context, payload string) {
	idx, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		a.ui.PrintHint(fmt.Sprintf("%q is not a recipe number.", payload))
		return
	}
	recipe, err := a.collection.At(idx - 1)
	if err != nil {
		a.ui.PrintHint(fmt.Sprintf("No recipe [%d].", idx))
		return
	}
	if err := a.collection.Delete(ctx, recipe.ID); err != nil {
		a.notifier.NotifyUrgent(ctx, fmt.Sprintf("Error deleting recipe: %v", err))
		return
	}
	a.notifier.Notify(ctx, fmt.Sprintf("Deleted %q.", recipe.Title))
}

func (a *cliApp) export(ctx context.Context) {
	done := a.ui.Activity().Begin("exporting")
	path, err := a.exporter.WriteFile(a.exportDir, a.collection.Recipes(), a.styles.Load())
	done()
	if err != nil {
		a.notifier.NotifyUrgent(ctx, fmt.Sprintf("Export failed: %v", err))
		return
	}
	a.notifier.Notify(ctx, "Exported collection to "+path)
	a.ui.PrintHint("Open the file in a browser — it works offline.")
}

// ── Category handlers ────────────────────────────────────────────

func (a *cliApp) showCategories() {
	a.ui.PrintHeading("Categories:")
	for _, c := range a.collection.Categories() {
		n := 0
		for _, r := range a.collection.Recipes() {
			if r.Category == c {
				n++
			}
		}
		a.ui.PrintBody(fmt.Sprintf("  %s (%d)", c, n))
	}
	a.ui.PrintHint("add category <name> / delete category <name>")
}

func (a *cliApp) addCategory(ctx context.Context, name string) {
	err := a.collection.AddCategory(ctx, name)
	switch {
	case errors.Is(err, domain.ErrCategoryEmpty):
		a.ui.PrintHint("Category name can't be empty.")
	case errors.Is(err, domain.ErrCategoryExists):
		a.ui.PrintHint(fmt.Sprintf("Category %q already exists.", strings.TrimSpace(name)))
	case err != nil:
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
	default:
		a.ui.PrintChat(fmt.Sprintf("Added category %q.", strings.TrimSpace(name)))
	}
}

func (a *cliApp) deleteCategory(ctx context.Context, name string) {
	err := a.collection.DeleteCategory(ctx, name)
	switch {
	case errors.Is(err, domain.ErrSentinelCategory):
		a.ui.PrintHint(fmt.Sprintf("%q can't be deleted — it's where uncategorized recipes live.", domain.SentinelCategory))
	case errors.Is(err, domain.ErrNotFound):
		a.ui.PrintHint(fmt.Sprintf("No category named %q.", name))
	case err != nil:
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
	default:
		a.ui.PrintChat(fmt.Sprintf("Deleted %q. Its recipes moved to %q.", name, domain.SentinelCategory))
	}
}

// ── Style handlers ───────────────────────────────────────────────

// styleFields maps the command-line field names onto StyleSettings.
var styleFields = []string{"font", "primary", "background", "text", "card", "heading"}

func (a *cliApp) style(ctx context.Context, payload string) {
	current := a.styles.Load()

	if payload == "" {
		a.ui.PrintHeading("Export styles:")
		a.ui.PrintBody("  font       " + current.FontFamily)
		a.ui.PrintBody("  primary    " + current.PrimaryColor)
		a.ui.PrintBody("  background " + current.BackgroundColor)
		a.ui.PrintBody("  text       " + current.TextColor)
		a.ui.PrintBody("  card       " + current.CardBackgroundColor)
		a.ui.PrintBody("  heading    " + current.HeadingColor)
		a.ui.PrintHint("style <field> <value> to change, e.g. 'style font Lora'")
		return
	}

	parts := strings.SplitN(payload, " ", 2)
	if len(parts) != 2 {
		a.ui.PrintHint("Usage: style <field> <value> — fields: " + strings.Join(styleFields, ", "))
		return
	}
	field, value := strings.ToLower(parts[0]), strings.TrimSpace(parts[1])

	switch field {
	case "font":
		current.FontFamily = value
	case "primary":
		current.PrimaryColor = value
	case "background":
		current.BackgroundColor = value
	case "text":
		current.TextColor = value
	case "card":
		current.CardBackgroundColor = value
	case "heading":
		current.HeadingColor = value
	default:
		a.ui.PrintHint("Unknown field. Fields: " + strings.Join(styleFields, ", "))
		return
	}

	if err := a.styles.Save(current); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error saving styles: %v", err))
		return
	}
	a.ui.PrintChat(fmt.Sprintf("Set %s. Run 'export' to see it.", field))
}

// ── Help ─────────────────────────────────────────────────────────

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Commands:")
	a.ui.PrintBody("  list / recipes        Show the collection")
	a.ui.PrintBody("  1, 2, 3...            Open a recipe by number")
	a.ui.PrintBody("  open <n>              Same thing, spelled out")
	a.ui.PrintBody("  new [idea]            New recipe — with an idea, the AI drafts it")
	a.ui.PrintBody("  delete <n>            Delete a recipe")
	a.ui.PrintBody("  export                Write the collection as a standalone HTML page")
	a.ui.PrintBody("  categories            List categories")
	a.ui.PrintBody("  add category <name>   Create a category")
	a.ui.PrintBody("  delete category <name>  Remove one (recipes move to " + domain.SentinelCategory + ")")
	a.ui.PrintBody("  style [field value]   Show or change the export page styling")
	a.ui.PrintBody("  help                  Show this message")
	a.ui.PrintBody("  quit / exit           Leave")
	a.ui.Println("")
	a.ui.PrintHint("AI drafting and instruction markup need GPT_CHAT_KEY + GPT_CHAT_ENDPOINT.")
}
