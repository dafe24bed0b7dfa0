package stats

import "sort"

// sortCreatorRows orders the leaderboard by recipe count descending, breaking
// ties by average rating descending.
func sortCreatorRows(rows []creatorRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RecipeCount != rows[j].RecipeCount {
			return rows[i].RecipeCount > rows[j].RecipeCount
		}
		return rows[i].AvgRating > rows[j].AvgRating
	})
}
