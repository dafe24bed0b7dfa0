package stats

// ContentStats are the aggregate numbers over one creator's recipes.
type ContentStats struct {
	RecipeCount  int64   `json:"recipe_count" bson:"recipe_count"`
	PremiumCount int64   `json:"premium_count" bson:"premium_count"`
	AvgRating    float64 `json:"average_rating" bson:"avg_rating"`
	TotalViews   int64   `json:"total_views" bson:"total_views"`
}

// deriveBadges evaluates the badge threshold rules against computed stats.
// Badges are pure derivations, nothing is persisted.
func deriveBadges(content ContentStats, followers int64) []string {
	badges := []string{}
	if content.AvgRating >= 4.5 && content.RecipeCount > 5 {
		badges = append(badges, "5★ Cook")
	}
	if content.RecipeCount >= 20 {
		badges = append(badges, "Prolific")
	}
	if content.PremiumCount >= 5 {
		badges = append(badges, "Premium Chef")
	}
	if followers >= 1000 {
		badges = append(badges, "Popular")
	}
	return badges
}
