// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import (
	"fmt"
	"strings"
)

const (
	fallbackInterest = "your chosen field"
	fallbackGoal     = "your chosen path"
)

// Assemble turns resolved courses into ranked recommendations. Ranks are
// 1-based over the courses given, so gaps left by completed courses close up.
func Assemble(resolved []ResolvedCourse, profile *StudentProfile, terms Terms) []Recommendation {
	recs := make([]Recommendation, 0, len(resolved))
	for i := range resolved {
		rc := &resolved[i]

		semester := terms.Current
		if rc.Status == StatusPrerequisitesNeeded {
			semester = terms.Next
		}

		recs = append(recs, Recommendation{
			Rank:                 i + 1,
			CourseID:             rc.ID,
			CourseCode:           rc.Code,
			CourseName:           rc.Name,
			Credits:              rc.Credits,
			DifficultyLevel:      rc.DifficultyLevel,
			RelevanceScore:       rc.RelevanceScore,
			EligibilityStatus:    rc.Status,
			MissingPrerequisites: append([]string{}, rc.Missing...),
			RecommendationText:   Narrative(rc, profile),
			SuggestedSemester:    semester,
		})
	}
	return recs
}

// Narrative writes the recommendation text for one resolved course.
func Narrative(rc *ResolvedCourse, profile *StudentProfile) string {
	interest := fallbackInterest
	if len(profile.Interests) > 0 {
		interest = profile.Interests[0]
	}
	goal := profile.CareerGoal
	if strings.TrimSpace(goal) == "" {
		goal = fallbackGoal
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This course, %s, directly aligns with your interest in %s and your career goal of %s. ",
		rc.Name, interest, goal)

	if rc.Status == StatusEligible {
		b.WriteString("You have met all prerequisites, so you can take this course in the next semester. ")
		b.WriteString("This will build on your strong subjects and prepare you for advanced topics in your field.")
		return b.String()
	}

	fmt.Fprintf(&b, "However, you are missing the following prerequisites: %s. ", strings.Join(rc.Missing, ", "))
	fmt.Fprintf(&b, "I recommend you take these courses first, and then you will be ready to take %s.", rc.Name)
	return b.String()
}
