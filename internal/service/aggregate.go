package service

import (
	"math"
	"strings"

	"github.com/cwdb/course-ratings-api/internal/models"
)

// NoRatingDisplay is shown when no ratings exist for an aggregate.
const NoRatingDisplay = "No rating"

// Average reduces a collection of ratings to a presentable aggregate.
// The mean is rounded half away from zero; scores are always positive,
// so ties round up (2.5 becomes 3, not 2 as banker's rounding would give).
func Average(ratings []models.Rating) models.AggregateResult {
	if len(ratings) == 0 {
		return models.AggregateResult{HasRating: false, Display: NoRatingDisplay}
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating.Score
	}
	mean := float64(sum) / float64(len(ratings))
	value := int(math.Round(mean))

	return models.AggregateResult{
		HasRating: true,
		Value:     value,
		Display:   strings.Repeat("*", value),
	}
}
