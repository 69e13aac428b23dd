package grading

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/edugo-labs/aula-api/internal/models"
)

func topicWith(exam, practice, notebook, other string) models.Topic {
	return models.Topic{
		ExamWeight:     d(exam),
		PracticeWeight: d(practice),
		NotebookWeight: d(notebook),
		OtherWeight:    d(other),
	}
}

func gradeIn(category models.AssignmentCategory, grade, maxGrade string) models.GradeDetail {
	return models.GradeDetail{
		Grade:    models.Grade{Grade: d(grade)},
		Category: category,
		MaxGrade: d(maxGrade),
	}
}

func TestTopicGradeSingleCategory(t *testing.T) {
	topic := topicWith("100", "0", "0", "0")
	grades := []models.GradeDetail{
		gradeIn(models.CategoryExam, "8", "10"),
	}

	// 8/10 -> 80, weighted by 100%.
	assert.True(t, TopicGrade(topic, grades).Equal(d("80")))
}

func TestTopicGradeWeightedMix(t *testing.T) {
	topic := topicWith("40", "30", "20", "10")
	grades := []models.GradeDetail{
		gradeIn(models.CategoryExam, "10", "10"),     // 100 * 0.40 = 40
		gradeIn(models.CategoryPractice, "5", "10"),  // mean with next
		gradeIn(models.CategoryPractice, "10", "10"), // (50+100)/2 = 75 * 0.30 = 22.5
		gradeIn(models.CategoryNotebook, "8", "10"),  // 80 * 0.20 = 16
	}

	// Other category empty: contributes 0 and its weight is not
	// redistributed. Total = 40 + 22.5 + 16 = 78.5.
	assert.True(t, TopicGrade(topic, grades).Equal(d("78.5")))
}

func TestTopicGradeNormalisesAgainstMaxGrade(t *testing.T) {
	topic := topicWith("100", "0", "0", "0")
	grades := []models.GradeDetail{
		gradeIn(models.CategoryExam, "45", "50"),
	}

	assert.True(t, TopicGrade(topic, grades).Equal(d("90")))
}

func TestTopicGradeEmptyInput(t *testing.T) {
	topic := topicWith("40", "30", "20", "10")
	assert.True(t, TopicGrade(topic, nil).Equal(decimal.Zero))
}

func TestTopicGradeIgnoresZeroMaxGrade(t *testing.T) {
	topic := topicWith("100", "0", "0", "0")
	grades := []models.GradeDetail{
		gradeIn(models.CategoryExam, "5", "0"),
		gradeIn(models.CategoryExam, "9", "10"),
	}

	assert.True(t, TopicGrade(topic, grades).Equal(d("90")))
}

func TestTopicGradeRoundsToTwoPlaces(t *testing.T) {
	topic := topicWith("100", "0", "0", "0")
	grades := []models.GradeDetail{
		gradeIn(models.CategoryExam, "1", "3"),
		gradeIn(models.CategoryExam, "2", "3"),
	}

	// Means (33.33.. + 66.66..)/2 = 50 exactly.
	assert.True(t, TopicGrade(topic, grades).Equal(d("50")))

	grades = []models.GradeDetail{gradeIn(models.CategoryExam, "1", "3")}
	assert.True(t, TopicGrade(topic, grades).Equal(d("33.33")))
}
