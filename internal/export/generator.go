// Package export produces the standalone recipe book document: a single
// HTML file embedding the recipe data, the style settings, and a client
// script that reproduces the app's rendering rules with no access to the
// app itself. The only network references in the output are recipe image
// URLs and the CSS framework CDN.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// FileName is the name of the generated document.
const FileName = "recipes.html"

// Generator renders the export document.
type Generator struct {
	log  *logger.Logger
	tmpl *template.Template
}

// New creates a page generator.
func New(log *logger.Logger) *Generator {
	return &Generator{
		log:  log,
		tmpl: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// pageData feeds the document template. Style values and the embedded
// JSON/script are pre-escaped, so they carry typed markers to keep
// html/template from escaping them a second time.
type pageData struct {
	FontFamily          template.CSS
	PrimaryColor        template.CSS
	BackgroundColor     template.CSS
	TextColor           template.CSS
	CardBackgroundColor template.CSS
	HeadingColor        template.CSS
	Categories          []string
	RecipesJSON         template.JS
	Script              template.JS
}

// Generate renders the complete document. An empty recipe list is valid
// and yields a page whose grid shows an empty-state message.
func (g *Generator) Generate(recipes []domain.Recipe, styles domain.StyleSettings) ([]byte, error) {
	if recipes == nil {
		recipes = []domain.Recipe{}
	}

	// encoding/json escapes <, > and & by default, so the blob is safe
	// to inline inside a <script> element.
	recipesJSON, err := json.Marshal(recipes)
	if err != nil {
		return nil, fmt.Errorf("export: marshal recipes: %w", err)
	}

	styles = styles.Merged()
	data := pageData{
		FontFamily:          template.CSS(cssSafe(styles.FontFamily)),
		PrimaryColor:        template.CSS(cssSafe(styles.PrimaryColor)),
		BackgroundColor:     template.CSS(cssSafe(styles.BackgroundColor)),
		TextColor:           template.CSS(cssSafe(styles.TextColor)),
		CardBackgroundColor: template.CSS(cssSafe(styles.CardBackgroundColor)),
		HeadingColor:        template.CSS(cssSafe(styles.HeadingColor)),
		Categories:          categorySet(recipes),
		RecipesJSON:         template.JS(recipesJSON),
		Script:              template.JS(clientScript),
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("export: render page: %w", err)
	}

	g.log.Debug("export: generated %d bytes for %d recipes", buf.Len(), len(recipes))
	return buf.Bytes(), nil
}

// WriteFile generates the document and writes it to dir/recipes.html,
// returning the full path.
func (g *Generator) WriteFile(dir string, recipes []domain.Recipe, styles domain.StyleSettings) (string, error) {
	doc, err := g.Generate(recipes, styles)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}

	g.log.Info("export: wrote %s (%d recipes)", path, len(recipes))
	return path, nil
}

// categorySet returns the distinct categories present in the data, in
// first-appearance order, for the filter dropdown.
func categorySet(recipes []domain.Recipe) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range recipes {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}

// cssSafe neutralizes style values before they are interpolated into the
// document's <style> and tailwind config blocks. Values are operator
// provided, but a stray brace or tag must not be able to break out of
// the surrounding block, so everything outside a small allowlist is
// dropped.
func cssSafe(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune(" #,.()%-_", r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// pageTemplate is the document skeleton. Styling leans on the Tailwind
// CDN plus CSS custom properties derived from the style settings, same
// classes in the static shell and in the script-rendered views.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>My Recipe Book</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
        @import url('https://fonts.googleapis.com/css2?family=Lora:ital,wght@0,400..700;1,400..700&family=Montserrat:ital,wght@0,100..900;1,100..900&family=Nunito:ital,wght@0,200..1000;1,200..1000&family=Playfair+Display:ital,wght@0,400..900;1,400..900&family=Roboto:ital,wght@0,100;0,300;0,400;0,500;0,700;0,900&display=swap');
        :root {
            --font-family: '{{.FontFamily}}';
            --primary-color: {{.PrimaryColor}};
            --background-color: {{.BackgroundColor}};
            --text-color: {{.TextColor}};
            --card-background-color: {{.CardBackgroundColor}};
            --heading-color: {{.HeadingColor}};
        }
    </style>
    <script>
        tailwind.config = {
            theme: {
                extend: {
                    fontFamily: {
                        sans: ['{{.FontFamily}}', 'sans-serif'],
                    },
                    colors: {
                        primary: 'var(--primary-color)',
                        'bg-main': 'var(--background-color)',
                        'text': 'var(--text-color)',
                        'card-bg': 'var(--card-background-color)',
                        'heading': 'var(--heading-color)',
                    }
                }
            }
        }
    </script>
</head>
<body class="bg-bg-main font-sans text-text">
    <div class="container mx-auto p-4 sm:p-6 lg:p-8">
        <header class="text-center my-8">
            <h1 class="text-5xl font-bold text-heading">Recipe Book</h1>
            <p class="text-text/80 mt-2">The best dishes, collected in one place</p>
        </header>

        <div class="sticky top-0 z-10 bg-bg-main/80 backdrop-blur-sm py-4 mb-8 rounded-lg">
            <div class="grid grid-cols-1 md:grid-cols-4 gap-4 items-end p-4 bg-card-bg shadow-md rounded-lg">
                <div>
                    <label for="searchInput" class="block text-sm font-medium text-heading">Search</label>
                    <input type="text" id="searchInput" placeholder="e.g. 'chicken'" class="mt-1 block w-full bg-gray-100 text-gray-800 border-gray-300 rounded-md shadow-sm focus:ring-primary focus:border-primary">
                </div>
                <div>
                    <label for="categoryFilter" class="block text-sm font-medium text-heading">Category</label>
                    <select id="categoryFilter" class="mt-1 block w-full bg-gray-100 text-gray-800 pl-3 pr-10 py-2 text-base border-gray-300 focus:outline-none focus:ring-primary focus:border-primary sm:text-sm rounded-md">
                        <option value="all">All categories</option>
                        {{range .Categories}}<option value="{{.}}">{{.}}</option>
                        {{end}}
                    </select>
                </div>
                <div>
                    <label for="sortFilter" class="block text-sm font-medium text-heading">Sort</label>
                    <select id="sortFilter" class="mt-1 block w-full bg-gray-100 text-gray-800 pl-3 pr-10 py-2 text-base border-gray-300 focus:outline-none focus:ring-primary focus:border-primary sm:text-sm rounded-md">
                        <option value="default">Default order</option>
                        <option value="title-asc">Title (A-Z)</option>
                        <option value="title-desc">Title (Z-A)</option>
                        <option value="time-asc">Cook time (quickest first)</option>
                        <option value="time-desc">Cook time (longest first)</option>
                        <option value="cal-asc">Calories (lightest first)</option>
                        <option value="cal-desc">Calories (heartiest first)</option>
                    </select>
                </div>
                <div>
                    <label for="caloriesFilter" class="block text-sm font-medium text-heading">Calories up to: <span id="caloriesValue" class="font-bold text-primary"></span></label>
                    <input type="range" id="caloriesFilter" min="0" step="10" class="w-full h-2 bg-gray-200 rounded-lg appearance-none cursor-pointer accent-primary">
                </div>
            </div>
        </div>

        <main>
            <div id="recipe-grid" class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-8"></div>
        </main>
    </div>
    <script>
        window.recipesData = {{.RecipesJSON}};
        document.addEventListener('DOMContentLoaded', () => { {{.Script}} });
    </script>
</body>
</html>
`
