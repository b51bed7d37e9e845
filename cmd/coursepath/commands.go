// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/coursepath/internal/auth"
	"github.com/tomtom215/coursepath/internal/database"
	"github.com/tomtom215/coursepath/internal/recommend"
	"github.com/tomtom215/coursepath/internal/validation"
)

// invalidPreferences names every rejected override flag.
func invalidPreferences(verr *validation.RequestValidationError) error {
	fields := make([]string, 0, len(verr.Errors()))
	for _, fe := range verr.Errors() {
		fields = append(fields, fe.Field)
	}
	return fmt.Errorf("invalid preferences (%s): %w", strings.Join(fields, ", "), verr)
}

func parseStudentID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("student id must be a positive integer, got %q", arg)
	}
	return id, nil
}

// =============================================================================
// RECOMMEND
// =============================================================================

func newRecommendCmd(c *cli) *cobra.Command {
	var (
		interests  []string
		strong     []string
		careerGoal string
		difficulty int
	)
	cmd := &cobra.Command{
		Use:   "recommend <student-id>",
		Short: "Produce the recommendation payload for a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := parseStudentID(args[0])
			if err != nil {
				return err
			}

			req := recommend.Request{StudentID: studentID}
			if len(interests) > 0 || len(strong) > 0 || difficulty != 0 || cmd.Flags().Changed("career-goal") {
				prefs := &recommend.Preferences{
					Interests:           interests,
					StrongSubjects:      strong,
					PreferredDifficulty: difficulty,
				}
				if cmd.Flags().Changed("career-goal") {
					prefs.CareerGoal = &careerGoal
				}
				if verr := validation.ValidateStruct(prefs); verr != nil {
					return invalidPreferences(verr)
				}
				req.Preferences = prefs
			}

			db, err := c.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			engine, err := c.newEngine(db)
			if err != nil {
				return err
			}
			payload, err := engine.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.output(payload)
		},
	}
	cmd.Flags().StringSliceVar(&interests, "interests", nil, "override the stored interests (comma-separated)")
	cmd.Flags().StringSliceVar(&strong, "strong", nil, "override the stored strong subjects (comma-separated)")
	cmd.Flags().StringVar(&careerGoal, "career-goal", "", "override the stored career goal")
	cmd.Flags().IntVar(&difficulty, "difficulty", 0, "override the preferred difficulty (1-5)")
	return cmd
}

// =============================================================================
// SCORE
// =============================================================================

// explainedCourse is a scored candidate with its unweighted sub-scores.
type explainedCourse struct {
	recommend.ScoredCourse
	Breakdown recommend.Breakdown `json:"breakdown"`
}

// explainCandidates attaches the scorer's breakdown to every candidate.
func explainCandidates(ctx context.Context, engine *recommend.Engine, db *database.DB, list *recommend.CandidateList) (interface{}, error) {
	profile, err := db.GetStudentProfile(ctx, list.StudentID)
	if err != nil {
		return nil, err
	}
	scorer := engine.Pipeline().Scorer()
	courses := make([]explainedCourse, len(list.Courses))
	for i, sc := range list.Courses {
		courses[i] = explainedCourse{ScoredCourse: sc, Breakdown: scorer.Explain(sc.Course, profile)}
	}
	return map[string]interface{}{
		"student_id": list.StudentID,
		"courses":    courses,
		"total":      list.Total,
	}, nil
}

func newScoreCmd(c *cli) *cobra.Command {
	var (
		k       int
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "score <student-id>",
		Short: "List the top scored candidates for a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := parseStudentID(args[0])
			if err != nil {
				return err
			}
			if k < 0 {
				return fmt.Errorf("--k must not be negative, got %d", k)
			}

			db, err := c.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			engine, err := c.newEngine(db)
			if err != nil {
				return err
			}
			list, err := engine.Candidates(cmd.Context(), studentID, k)
			if err != nil {
				return err
			}
			if !explain {
				return c.output(list)
			}
			explained, err := explainCandidates(cmd.Context(), engine, db, list)
			if err != nil {
				return err
			}
			return c.output(explained)
		},
	}
	cmd.Flags().IntVar(&k, "k", 0, "number of candidates (0 uses the configured default)")
	cmd.Flags().BoolVar(&explain, "explain", false, "include the per-factor score breakdown")
	return cmd
}

// =============================================================================
// COURSES
// =============================================================================

func newCoursesCmd(c *cli) *cobra.Command {
	var filter database.CourseFilter
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List active catalog courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.Limit < 0 || filter.Offset < 0 {
				return fmt.Errorf("--limit and --offset must not be negative")
			}
			db, err := c.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			courses, err := db.ListCourses(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return c.output(courses)
		},
	}
	cmd.Flags().StringVar(&filter.Department, "department", "", "department name or code")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "maximum courses to list (0 lists all)")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "courses to skip")
	return cmd
}

// =============================================================================
// SEED
// =============================================================================

func newSeedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the demo catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := c.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.SeedDemoData(cmd.Context()); err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}
			return c.output(map[string]interface{}{
				"seeded": true,
				"driver": db.Driver(),
				"path":   c.cfg.Database.Path,
			})
		},
	}
}

// =============================================================================
// TOKEN
// =============================================================================

func newTokenCmd(c *cli) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "token <username>",
		Short: "Sign an API token with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := auth.NewJWTManager(&c.cfg.Security)
			if err != nil {
				return err
			}
			token, err := manager.GenerateToken(args[0], role)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			return c.output(map[string]interface{}{
				"token":      token,
				"username":   args[0],
				"role":       role,
				"expires_in": int(c.cfg.Security.SessionTimeout.Seconds()),
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", "advisor", "role claim")
	return cmd
}
