// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

// Package recommend implements the course recommendation pipeline.
//
// # Pipeline
//
// A run moves strictly forward through four pure stages:
//
//   - Scorer: weighted relevance of each active course to the student
//     (interest 40, career 30, difficulty 20, strategic 10), clamped to
//     [0, 100] and rounded to two decimals, with a justification string.
//   - Ranker: stable descending sort on score; ties keep catalog order.
//     A wide candidate cut (default 12) is taken first, then the
//     eligibility shortlist (default 5).
//   - Resolver: classifies each shortlisted course as eligible or
//     prerequisites_needed against the completed-course set and the
//     prerequisite edges, and folds the blocking prerequisites into a
//     single list where the first blocked course names the reason.
//   - Assembler: assigns 1-based ranks over the survivors and writes the
//     narrative and the suggested term.
//
// Scoring is fanned out over a bounded errgroup. Resolution runs
// sequentially in rank order.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetDataProvider(store)
//
//	payload, err := engine.Recommend(ctx, recommend.Request{StudentID: 7})
//
// Pipeline can be used directly when the inputs are already in memory.
//
// # Errors
//
// A malformed record rejects the whole run with a *ContractError. Every
// failure returned by the engine is a *StageError carrying the student id
// and the stage that failed. An empty result is not an error.
//
// The package does not import other internal packages except validation;
// storage is reached through DataProvider and run events through
// RunObserver.
package recommend
