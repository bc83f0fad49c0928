package recipe

// SampleRecipes is the data a store starts with when no document exists yet.
func SampleRecipes() []Recipe {
	return []Recipe{
		{
			ID:           1,
			Name:         "Simple Dal",
			Ingredients:  "Lentils, Onion, Tomato, Turmeric, Salt, Oil",
			Instructions: "Boil lentils with turmeric. In a pan, heat oil, add onions, then tomatoes. Mix with cooked lentils and add salt.",
			CookingTime:  "30 minutes",
			Difficulty:   "Easy",
			Language:     "english",
			Cuisine:      "Indian",
		},
		{
			ID:           2,
			Name:         "పప్పు పులుసు",
			Ingredients:  "పప్పు, ఉల్లిపాయ, టమాటా, పసుపు, ఉప్పు, నూనె",
			Instructions: "పప్పును పసుపుతో వండాలి. వేరే పాత్రలో నూనె వేసి, ఉల్లిపాయలు వేసి, తర్వాత టమాటాలు వేయాలి. వండిన పప్పుతో కలపాలి.",
			CookingTime:  "30 నిమిషాలు",
			Difficulty:   "సులభం",
			Language:     "telugu",
			Cuisine:      "తెలుగు వంటకాలు",
		},
	}
}

// SampleArticles is the article counterpart of SampleRecipes.
func SampleArticles() []Article {
	return []Article{
		{
			ID:       1,
			Title:    "Traditional Cooking Methods",
			Content:  "In the past, traditional cooking methods were used to prepare nutritious meals. Clay pots and wood fire gave unique flavors to food.",
			Date:     "1950-01-15",
			Source:   "Heritage Daily",
			Language: "english",
			Category: "food_culture",
		},
		{
			ID:       2,
			Title:    "సాంప్రదాయ వంట పద్ధతులు",
			Content:  "పూర్వకాలంలో సాంప్రదాయ వంట పద్ధతులను ఉపయోగించి పోషకమైన భోజనం తయారు చేసేవారు. మట్టి పాత్రలు మరియు కట్టెల మంట ఆహారానికి ప్రత్యేక రుచిని ఇచ్చేవి.",
			Date:     "1950-01-15",
			Source:   "వారసత్వ దినపత్రిక",
			Language: "telugu",
			Category: "ఆహార_సంస్కృతి",
		},
	}
}
