// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import "sort"

// Rank returns the top k courses by descending score. Equal scores keep
// their input order. k <= 0 returns every course. The input is not modified.
func Rank(scored []ScoredCourse, k int) []ScoredCourse {
	ranked := make([]ScoredCourse, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
