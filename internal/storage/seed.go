package storage

import "github.com/hammamikhairi/cookbook/internal/domain"

// SeedCategories returns the bundled category list. The sentinel default
// category is always first.
func SeedCategories() []string {
	return []string{
		domain.SentinelCategory,
		"Soups",
		"Main Dishes",
		"Desserts",
	}
}

// SeedRecipes returns the bundled starter recipes, used on first run and
// whenever the persisted recipe list cannot be parsed. Instructions are
// raw markup: ingredient mentions are wrapped in {{double braces}} and
// resolved at display time.
func SeedRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID:          "seed-tomato-soup",
			Title:       "Roasted Tomato Soup",
			Category:    "Soups",
			ImageRef:    "https://picsum.photos/seed/tomato-soup/600/400",
			Description: "Deeply savory soup from oven-roasted tomatoes and garlic, finished with cream.",
			Ingredients: []domain.Ingredient{
				{ID: "ts-1", Name: "Tomatoes", Amount: "1 kg"},
				{ID: "ts-2", Name: "Garlic", Amount: "4 cloves"},
				{ID: "ts-3", Name: "Olive oil", Amount: "3 tbsp"},
				{ID: "ts-4", Name: "Heavy cream", Amount: "100 ml"},
				{ID: "ts-5", Name: "Basil", Amount: ""},
			},
			Instructions: []string{
				"Halve the {{Tomatoes}} and spread them on a baking sheet with the unpeeled {{Garlic}}.",
				"Drizzle with {{Olive oil}} and roast at 200°C for 40 minutes.",
				"Squeeze the roasted {{Garlic}} out of its skins, blend everything smooth, and bring to a simmer.",
				"Stir in the {{Heavy cream}}, season, and serve topped with {{Basil}}.",
			},
			Calories:        320,
			CookTimeMinutes: 55,
		},
		{
			ID:          "seed-pancakes",
			Title:       "Buttermilk Pancakes",
			Category:    "Desserts",
			ImageRef:    "https://picsum.photos/seed/pancakes/600/400",
			Description: "Tall, fluffy pancakes. The batter should stay slightly lumpy — do not overmix.",
			Ingredients: []domain.Ingredient{
				{ID: "pc-1", Name: "Flour", Amount: "250 g"},
				{ID: "pc-2", Name: "Buttermilk", Amount: "300 ml"},
				{ID: "pc-3", Name: "Eggs", Amount: "2"},
				{ID: "pc-4", Name: "Sugar", Amount: "2 tbsp"},
				{ID: "pc-5", Name: "Baking soda", Amount: "1 tsp"},
				{ID: "pc-6", Name: "Butter", Amount: "50 g"},
			},
			Instructions: []string{
				"Whisk the {{Flour}}, {{Sugar}} and {{Baking soda}} together.",
				"Beat the {{Eggs}} into the {{Buttermilk}}, then fold the wet mix into the dry until just combined.",
				"Melt a knob of {{Butter}} in a pan over medium heat and ladle in the batter.",
				"Flip when bubbles break the surface, about 2 minutes per side.",
			},
			Calories:        450,
			CookTimeMinutes: 30,
		},
	}
}
