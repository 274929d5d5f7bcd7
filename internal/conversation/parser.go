// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple patterns.
// Swap this out for an LLM-backed parser when ready.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	intent  domain.IntentType
	payload bool // carry the captured tail as payload
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(list|recipes|ls|browse|show all)$`), domain.IntentListRecipes, false},
		{regexp.MustCompile(`(?i)^(open|edit|view|show)\s+(.+)$`), domain.IntentOpenRecipe, true},
		{regexp.MustCompile(`(?i)^(new|add recipe|create)(\s+.*)?$`), domain.IntentNewRecipe, true},
		// Category rules sit above the recipe-delete rule so "delete
		// category X" is not read as deleting a recipe named "category X".
		{regexp.MustCompile(`(?i)^(add category|newcat|cat add)\s+(.+)$`), domain.IntentAddCategory, true},
		{regexp.MustCompile(`(?i)^(delete category|delcat|cat del)\s+(.+)$`), domain.IntentDeleteCategory, true},
		{regexp.MustCompile(`(?i)^(delete|remove|rm|del)\s+(.+)$`), domain.IntentDeleteRecipe, true},
		{regexp.MustCompile(`(?i)^(export|publish|html)$`), domain.IntentExport, false},
		{regexp.MustCompile(`(?i)^(categories|cats)$`), domain.IntentCategories, false},
		{regexp.MustCompile(`(?i)^(style|styles|theme)(\s+.*)?$`), domain.IntentStyle, true},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp, false},
		{regexp.MustCompile(`(?i)^(quit|exit|q|bye)$`), domain.IntentQuit, false},
	}
	return p
}

// Parse converts a line of prompt input into an intent. A bare number
// opens the recipe at that list position.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare list number is a shortcut for "open N".
	if isDigits(trimmed) {
		return &domain.Intent{Type: domain.IntentOpenRecipe, Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched intent: %s", rule.intent)
		intent := &domain.Intent{Type: rule.intent}
		if rule.payload && len(m) > 2 {
			intent.Payload = strings.TrimSpace(m[2])
		}
		return intent, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
