package recipe

// Statistics summarizes a recipe collection.
type Statistics struct {
	TotalRecipes int            `json:"total_recipes"`
	Languages    map[string]int `json:"languages"`
	Cuisines     map[string]int `json:"cuisines"`
	Difficulties map[string]int `json:"difficulties"`
}

// Summarize counts recipes by language, cuisine and difficulty. Empty values
// are counted as "unknown".
func Summarize(recipes []Recipe) Statistics {
	stats := Statistics{
		TotalRecipes: len(recipes),
		Languages:    map[string]int{},
		Cuisines:     map[string]int{},
		Difficulties: map[string]int{},
	}

	key := func(v string) string {
		if v == "" {
			return "unknown"
		}
		return v
	}

	for _, r := range recipes {
		stats.Languages[key(r.Language)]++
		stats.Cuisines[key(r.Cuisine)]++
		stats.Difficulties[key(r.Difficulty)]++
	}

	return stats
}
