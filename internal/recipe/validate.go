package recipe

import "strings"

// timeUnits are the tokens a cooking time must contain one of. "నిమిష" is the
// stem shared by నిమిషం and its plural నిమిషాలు.
var timeUnits = []string{"minute", "hour", "min", "hr", "నిమిషం", "నిమిష", "గంట"}

// Validate returns every problem with r: missing name, ingredients or
// instructions, and a cooking time without a time unit.
func Validate(r Recipe) []string {
	problems := []string{}

	required := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"ingredients", r.Ingredients},
		{"instructions", r.Instructions},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, "Missing required field: "+f.field)
		}
	}

	if r.CookingTime != "" && !hasTimeUnit(r.CookingTime) {
		problems = append(problems, "Cooking time should include time units")
	}

	return problems
}

// CheckValid wraps Validate's result in a *ValidationError.
func CheckValid(r Recipe) error {
	if problems := Validate(r); len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func hasTimeUnit(s string) bool {
	s = fold(s)
	for _, unit := range timeUnits {
		if strings.Contains(s, unit) {
			return true
		}
	}
	return false
}
