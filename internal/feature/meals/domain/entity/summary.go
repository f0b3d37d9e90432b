package entity

import (
	"sort"
	"strings"
)

// Summary aggregates a user's meals.
type Summary struct {
	TotalMeals   int
	TotalInDiet  int
	TotalOutDiet int
	BestSequence int
}

// Summarize computes the summary of meals. The best sequence is the longest
// run of consecutive in-diet meals when ordered by DateTime; the input order
// breaks ties. meals is not modified.
func Summarize(meals []Meal) Summary {
	ordered := make([]Meal, len(meals))
	copy(ordered, meals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return strings.Compare(ordered[i].DateTime, ordered[j].DateTime) < 0
	})

	var s Summary
	streak := 0
	for _, m := range ordered {
		s.TotalMeals++
		switch m.InOrOut {
		case InDiet:
			s.TotalInDiet++
		case OutDiet:
			s.TotalOutDiet++
		}

		if m.InOrOut == InDiet {
			streak++
			if streak > s.BestSequence {
				s.BestSequence = streak
			}
		} else {
			streak = 0
		}
	}
	return s
}
