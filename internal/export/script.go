package export

// clientScript is the JavaScript embedded in the exported document. It
// is source text generated for the page's own runtime — the exported
// file must work with no access to this application.
//
// processInstructionMarkup mirrors the app's non-amount-injecting render:
// {{name}} tokens resolve to the ingredient's name via a trimmed-name
// lookup, unresolved tokens degrade to their own trimmed text, and
// amounts are never injected in the exported page.
const clientScript = `
const recipesData = window.recipesData;

let ratings = {};
try {
  ratings = JSON.parse(localStorage.getItem('recipeRatings') || '{}');
} catch (e) {
  ratings = {};
}
const saveRatings = () => {
  localStorage.setItem('recipeRatings', JSON.stringify(ratings));
};

const processInstructionMarkup = (instruction, ingredients) => {
  if (!instruction || !ingredients) return instruction;
  const ingredientMap = new Map(ingredients.map(ing => [ing.name.trim(), ing]));
  return instruction.replace(/{{(.*?)}}/g, (match, ingredientName) => {
    const trimmedName = ingredientName.trim();
    const ingredient = ingredientMap.get(trimmedName);
    if (ingredient) {
      return ingredient.name;
    }
    return trimmedName;
  });
};

const esc = (s) => String(s)
  .replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;')
  .replace(/"/g, '&quot;').replace(/'/g, '&#39;');

const renderSingleRecipe = () => {
  document.body.innerHTML = '';
  const recipeId = window.location.hash.substring(1);
  const recipe = recipesData.find(r => r.id === recipeId);

  if (!recipe) {
    document.body.innerHTML = '<div class="text-center p-20"><h1 class="text-2xl font-bold text-heading">Recipe not found</h1><a href="' + window.location.pathname + '" class="mt-4 inline-block text-primary hover:underline">Back to all recipes</a></div>';
    return;
  }

  const singleViewHtml = ` + "`" + `
    <div class="container mx-auto p-4 sm:p-6 lg:p-12">
      <div class="max-w-4xl mx-auto">
        <a href="${window.location.pathname}" class="inline-block mb-8 text-sm text-primary hover:underline">&larr; Back to all recipes</a>
        <div class="bg-card-bg rounded-2xl shadow-xl overflow-hidden">
          <img src="${esc(recipe.imageUrl)}" alt="${esc(recipe.title)}" class="w-full h-64 md:h-96 object-cover">
          <div class="p-6 sm:p-8 md:p-10">
            <span class="text-sm font-semibold text-primary uppercase">${esc(recipe.category)}</span>
            <h1 class="text-4xl md:text-5xl font-bold text-heading mt-2">${esc(recipe.title)}</h1>
            <p class="text-text mt-4 text-lg">${esc(recipe.description)}</p>
            <div class="mt-6 text-base text-text/80 flex flex-col sm:flex-row gap-4 sm:gap-8 border-y border-gray-200 py-4">
              <span><strong class="text-heading">Cook time:</strong> ${recipe.cookTime} min</span>
              <span><strong class="text-heading">Calories:</strong> ${recipe.calories} kcal</span>
            </div>
            <div class="mt-6 grid grid-cols-1 md:grid-cols-2 gap-8">
              <div>
                <h2 class="text-2xl font-semibold text-heading mb-4">Ingredients</h2>
                <ul class="list-disc list-inside text-text space-y-2">
                  ${recipe.ingredients.map(ing => '<li><strong>' + esc(ing.name) + '</strong>' + (ing.amount ? ' &mdash; ' + esc(ing.amount) : '') + '</li>').join('')}
                </ul>
              </div>
              <div>
                <h2 class="text-2xl font-semibold text-heading mb-4">Instructions</h2>
                <ol class="list-decimal list-inside text-text space-y-4">
                  ${recipe.instructions.map(step => '<li>' + esc(processInstructionMarkup(step, recipe.ingredients)) + '</li>').join('')}
                </ol>
              </div>
            </div>
          </div>
        </div>
      </div>
    </div>
  ` + "`" + `;
  document.body.insertAdjacentHTML('beforeend', singleViewHtml);
};

const initGridView = () => {
  const recipeGrid = document.getElementById('recipe-grid');
  const searchInput = document.getElementById('searchInput');
  const caloriesFilter = document.getElementById('caloriesFilter');
  const caloriesValue = document.getElementById('caloriesValue');
  const categoryFilter = document.getElementById('categoryFilter');
  const sortFilter = document.getElementById('sortFilter');

  const starSvg = (value, filled) =>
    '<svg data-value="' + value + '" class="w-6 h-6 cursor-pointer ' + (filled ? 'text-amber-400' : 'text-gray-300') + '" fill="currentColor" viewBox="0 0 20 20">' +
    '<path d="M9.049 2.927c.3-.921 1.603-.921 1.902 0l1.07 3.292a1 1 0 00.95.69h3.462c.969 0 1.371 1.24.588 1.81l-2.8 2.034a1 1 0 00-.364 1.118l1.07 3.292c.3.921-.755 1.688-1.54 1.118l-2.8-2.034a1 1 0 00-1.175 0l-2.8 2.034c-.784.57-1.838-.197-1.539-1.118l1.07-3.292a1 1 0 00-.364-1.118L2.98 8.72c-.783-.57-.38-1.81.588-1.81h3.461a1 1 0 00.951-.69l1.07-3.292z" /></svg>';

  const renderRecipes = (recipesToRender) => {
    if (!recipeGrid) return;
    if (recipesToRender.length === 0) {
      recipeGrid.innerHTML = '<p class="text-center text-text col-span-full py-12">No recipes match your filters.</p>';
      return;
    }
    recipeGrid.innerHTML = recipesToRender.map(recipe => {
      const rating = ratings[recipe.id] || 0;
      let stars = '';
      for (let i = 0; i < 5; i++) {
        stars += starSvg(i + 1, i < rating);
      }
      const keyIngredients = recipe.ingredients.slice(0, 4);
      return ` + "`" + `
        <a href="#${esc(recipe.id)}" target="_blank" class="recipe-card block bg-card-bg rounded-lg shadow-lg overflow-hidden flex flex-col">
          <img src="${esc(recipe.imageUrl)}" alt="${esc(recipe.title)}" class="w-full h-56 object-cover">
          <div class="p-6 flex-grow flex flex-col">
            <span class="text-sm font-semibold text-primary uppercase">${esc(recipe.category)}</span>
            <h3 class="text-2xl font-bold text-heading mt-2">${esc(recipe.title)}</h3>
            <p class="text-text mt-2 text-base flex-grow">${esc(recipe.description)}</p>
            <div class="mt-4 text-sm text-text/80 flex justify-between">
              <span><strong class="text-heading">Time:</strong> ${recipe.cookTime} min</span>
              <span><strong class="text-heading">Calories:</strong> ${recipe.calories} kcal</span>
            </div>
            <div class="mt-4 border-t border-gray-200 pt-4">
              <h4 class="text-sm font-semibold text-heading mb-2">Key ingredients</h4>
              <ul class="list-disc list-inside text-text space-y-1 text-xs">
                ${keyIngredients.map(ing => '<li>' + esc(ing.name) + '</li>').join('')}
                ${recipe.ingredients.length > 4 ? '<li class="text-text/70">&hellip;and more</li>' : ''}
              </ul>
            </div>
            <div class="mt-auto pt-4 flex items-center justify-center gap-1" data-recipe-id="${esc(recipe.id)}">
              ${stars}
            </div>
          </div>
        </a>
      ` + "`" + `;
    }).join('');
  };

  const applyFiltersAndSort = () => {
    const searchTerm = searchInput.value.toLowerCase();
    const maxCalories = parseInt(caloriesFilter.value, 10);
    const selectedCategory = categoryFilter.value;
    const sortOption = sortFilter.value;

    let filtered = recipesData.filter(recipe => {
      const matchesSearch = searchTerm === '' ||
        recipe.title.toLowerCase().includes(searchTerm) ||
        recipe.description.toLowerCase().includes(searchTerm);
      const matchesCalories = recipe.calories <= maxCalories;
      const matchesCategory = selectedCategory === 'all' || recipe.category === selectedCategory;
      return matchesSearch && matchesCalories && matchesCategory;
    });

    switch (sortOption) {
      case 'time-asc': filtered.sort((a, b) => a.cookTime - b.cookTime); break;
      case 'time-desc': filtered.sort((a, b) => b.cookTime - a.cookTime); break;
      case 'cal-asc': filtered.sort((a, b) => a.calories - b.calories); break;
      case 'cal-desc': filtered.sort((a, b) => b.calories - a.calories); break;
      case 'title-asc': filtered.sort((a, b) => a.title.localeCompare(b.title)); break;
      case 'title-desc': filtered.sort((a, b) => b.title.localeCompare(a.title)); break;
    }
    renderRecipes(filtered);
  };

  const getMaxCalories = () =>
    recipesData.length > 0 ? Math.max(...recipesData.map(r => r.calories)) : 1000;

  if (searchInput) searchInput.addEventListener('input', applyFiltersAndSort);
  if (categoryFilter) categoryFilter.addEventListener('change', applyFiltersAndSort);
  if (sortFilter) sortFilter.addEventListener('change', applyFiltersAndSort);

  if (caloriesFilter && caloriesValue) {
    const maxCal = getMaxCalories();
    caloriesFilter.max = String(maxCal);
    caloriesFilter.value = String(maxCal);
    caloriesValue.textContent = String(maxCal);
    caloriesFilter.addEventListener('input', () => {
      caloriesValue.textContent = caloriesFilter.value;
      applyFiltersAndSort();
    });
  }

  if (recipeGrid) {
    recipeGrid.addEventListener('click', (e) => {
      const star = e.target.closest('svg[data-value]');
      if (!star) return;
      e.preventDefault();
      const rating = star.getAttribute('data-value');
      const holder = star.closest('[data-recipe-id]');
      if (rating && holder) {
        ratings[holder.dataset.recipeId] = parseInt(rating, 10);
        saveRatings();
        applyFiltersAndSort();
      }
    });
  }

  applyFiltersAndSort();
};

if (window.location.hash) {
  renderSingleRecipe();
} else {
  initGridView();
}
`
