package grading

import (
	"github.com/shopspring/decimal"

	"github.com/edugo-labs/aula-api/internal/models"
)

var hundred = decimal.NewFromInt(100)

// TopicGrade combines a student's recorded grades under a topic into the
// weighted topic grade on a 0-100 scale.
//
// Per category: each recorded grade is normalised to 0-100 against its
// assignment's max grade, the category mean is taken over recorded grades
// only, and the mean contributes mean * weight/100. A category with no
// recorded grades contributes zero; its weight is not redistributed among the
// others. The result is rounded half-even to two decimal places.
func TopicGrade(topic models.Topic, grades []models.GradeDetail) decimal.Decimal {
	sums := make(map[models.AssignmentCategory]decimal.Decimal, len(models.Categories))
	counts := make(map[models.AssignmentCategory]int64, len(models.Categories))

	for _, g := range grades {
		if g.MaxGrade.IsZero() {
			continue
		}
		normalized := g.Grade.Grade.Div(g.MaxGrade).Mul(hundred)
		sums[g.Category] = sums[g.Category].Add(normalized)
		counts[g.Category]++
	}

	total := decimal.Zero
	for _, category := range models.Categories {
		count := counts[category]
		if count == 0 {
			continue
		}
		mean := sums[category].Div(decimal.NewFromInt(count))
		contribution := mean.Mul(topic.CategoryWeight(category)).Div(hundred)
		total = total.Add(contribution)
	}

	return total.RoundBank(2)
}
