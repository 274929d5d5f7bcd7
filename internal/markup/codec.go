// Package markup converts between raw instruction text and displayable
// text. Raw instructions reference ingredients with {{name}} placeholders;
// rendering resolves them against the recipe's ingredient list.
//
// Render is pure and idempotent: resolved output contains no tokens, so
// rendering its own output is a no-op, and two calls with identical
// inputs produce identical results. The editor relies on this to decide
// whether the user actually changed a step.
package markup

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// token matches a {{name}} placeholder, non-greedy up to the next }}.
// There is no escaping mechanism for literal braces.
var token = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Registry is a trimmed-name-keyed ingredient lookup, built fresh from a
// recipe's current ingredient list. Trimming protects against user input
// with stray surrounding spaces on either side of the join.
type Registry map[string]domain.Ingredient

// NewRegistry builds the lookup. When two ingredients trim to the same
// name the later one wins, matching insertion into a plain map.
func NewRegistry(ingredients []domain.Ingredient) Registry {
	reg := make(Registry, len(ingredients))
	for _, ing := range ingredients {
		reg[strings.TrimSpace(ing.Name)] = ing
	}
	return reg
}

// Resolve looks up a raw token name, trimming it first.
func (r Registry) Resolve(name string) (domain.Ingredient, bool) {
	ing, ok := r[strings.TrimSpace(name)]
	return ing, ok
}

// Render resolves every {{name}} token in the instruction list.
//
// With injectAmounts off, each token is replaced by its own trimmed text.
// Unresolved tokens therefore degrade to whatever the user typed between
// the braces.
//
// With injectAmounts on, the first mention of each resolvable ingredient
// that has a non-empty amount is rendered as "Name (amount)". Mention
// tracking is scoped to the whole call, across all instructions in list
// order — the amount appears once per recipe, not once per step. Later
// mentions, amount-less ingredients, and unresolved tokens render as the
// bare name.
func Render(instructions []string, ingredients []domain.Ingredient, injectAmounts bool) []string {
	if len(instructions) == 0 {
		return []string{}
	}

	if !injectAmounts {
		out := make([]string, len(instructions))
		for i, text := range instructions {
			out[i] = token.ReplaceAllStringFunc(text, func(m string) string {
				return strings.TrimSpace(inner(m))
			})
		}
		return out
	}

	reg := NewRegistry(ingredients)
	mentioned := make(map[string]struct{})

	out := make([]string, len(instructions))
	for i, text := range instructions {
		out[i] = token.ReplaceAllStringFunc(text, func(m string) string {
			key := strings.TrimSpace(inner(m))
			ing, ok := reg[key]
			if !ok {
				return key
			}
			if _, seen := mentioned[key]; ing.Amount != "" && !seen {
				mentioned[key] = struct{}{}
				return ing.Name + " (" + ing.Amount + ")"
			}
			return ing.Name
		})
	}
	return out
}

// RenderOne renders a single instruction in isolation. Mention tracking
// starts fresh, exactly as if Render were called with a one-element list.
func RenderOne(instruction string, ingredients []domain.Ingredient, injectAmounts bool) string {
	return Render([]string{instruction}, ingredients, injectAmounts)[0]
}

// inner strips the surrounding {{ }} from a matched token.
func inner(m string) string {
	return m[2 : len(m)-2]
}
