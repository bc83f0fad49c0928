package generator

// DishTemplate is a recipe skeleton the Matcher fills in from the
// ingredients a user has on hand.
type DishTemplate struct {
	Name         string
	Type         string
	Required     []string // ingredient name fragments
	Optional     []string
	CookingTime  string
	Difficulty   string
	Servings     string
	Instructions string
}

// TraditionalDish is a catalog entry used by the Suggester and the
// traditional category generator.
type TraditionalDish struct {
	Name                 string
	Ingredients          []string
	Instructions         string
	CookingTime          string
	Difficulty           string
	CulturalSignificance string
}

// Templates returns the built-in template catalog in matching order.
func Templates() []DishTemplate {
	return []DishTemplate{
		{
			Name:         "Vegetable Curry",
			Type:         "traditional",
			Required:     []string{"vegetables", "onion", "tomato", "spices"},
			Optional:     []string{"garlic", "ginger", "coconut"},
			CookingTime:  "30 minutes",
			Difficulty:   "medium",
			Servings:     "4",
			Instructions: "1. Heat oil in pan. 2. Add onions and cook until golden. 3. Add tomatoes and spices. 4. Add vegetables and cook until tender. 5. Serve hot with rice.",
		},
		{
			Name:         "Rice Bowl",
			Type:         "modern",
			Required:     []string{"rice", "vegetables", "protein"},
			Optional:     []string{"sauce", "herbs", "nuts"},
			CookingTime:  "20 minutes",
			Difficulty:   "easy",
			Servings:     "4",
			Instructions: "1. Cook rice according to package instructions. 2. Prepare vegetables and protein. 3. Combine in bowl. 4. Add sauce and garnish.",
		},
	}
}

// TraditionalDishes returns the built-in dish catalog in suggestion order.
func TraditionalDishes() []TraditionalDish {
	return []TraditionalDish{
		{
			Name:                 "Dal Tadka",
			Ingredients:          []string{"lentils", "onion", "tomato", "garlic", "ginger", "turmeric", "cumin"},
			Instructions:         "1. Boil lentils with turmeric. 2. Prepare tadka with cumin, garlic, ginger. 3. Add onions and tomatoes. 4. Mix with cooked lentils.",
			CookingTime:          "30 minutes",
			Difficulty:           "easy",
			CulturalSignificance: "Traditional Indian comfort food",
		},
		{
			Name:                 "Vegetable Biryani",
			Ingredients:          []string{"basmati rice", "mixed vegetables", "yogurt", "biryani spices", "fried onions"},
			Instructions:         "1. Soak rice. 2. Cook vegetables with spices. 3. Layer rice and vegetables. 4. Cook on dum.",
			CookingTime:          "60 minutes",
			Difficulty:           "hard",
			CulturalSignificance: "Royal dish from Mughal cuisine",
		},
	}
}

// Vocabularies sampled by the category generators.
var (
	modernDishes       = []string{"Bowl", "Wrap", "Salad", "Stir-fry"}
	modernTechniques   = []string{"sous vide", "air frying", "pressure cooking", "steaming", "grilling", "roasting", "quick sautéing"}
	modernIngredients  = []string{"quinoa", "avocado", "kale", "chia seeds", "coconut oil", "almond milk", "Greek yogurt", "sweet potato", "spinach"}
	fusionCuisines     = []string{"Indian", "Italian", "Mexican", "Asian", "Mediterranean"}
	healthyDishes      = []string{"Power Bowl", "Nutrition Wrap", "Wellness Salad"}
	healthyIngredients = []string{"fresh vegetables", "lean protein", "whole grains", "healthy fats", "herbs and spices", "low-fat dairy", "legumes", "nuts and seeds"}
	quickDishes        = []string{"Meal", "Fix", "Bite", "Dish"}
	quickMethods       = []string{"stir-fry", "pan-sear", "microwave", "no-cook", "one-pot"}
)
