// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

// ResolvedCourse is a shortlisted course with its eligibility outcome.
type ResolvedCourse struct {
	ScoredCourse
	Status  EligibilityStatus
	Missing []string
}

// Resolution is the output of the eligibility resolver.
type Resolution struct {
	// Courses are the surviving shortlist entries, in rank order.
	Courses []ResolvedCourse

	// Prioritized lists each blocking prerequisite once, in first-seen order.
	Prioritized []PrioritizedPrerequisite
}

// Resolver classifies shortlisted courses against completed coursework.
type Resolver struct {
	gating map[EdgeType]struct{}
}

// NewResolver creates a resolver that only honours edges of the given types.
func NewResolver(gating []EdgeType) *Resolver {
	g := make(map[EdgeType]struct{}, len(gating))
	for _, t := range gating {
		g[t] = struct{}{}
	}
	return &Resolver{gating: g}
}

// resolveState is threaded through the shortlist fold. index maps a
// prerequisite code to its position in out.Prioritized.
type resolveState struct {
	out   Resolution
	index map[string]int
}

// Resolve walks shortlist in order. Courses already completed are dropped.
// A prerequisite that blocks several courses is reported once, with the
// reason naming the first course it blocked.
func (r *Resolver) Resolve(shortlist []ScoredCourse, completed CompletedSet, edges []PrerequisiteEdge) Resolution {
	required := r.requiredByCourse(edges)

	state := resolveState{
		out: Resolution{
			Courses:     make([]ResolvedCourse, 0, len(shortlist)),
			Prioritized: []PrioritizedPrerequisite{},
		},
		index: make(map[string]int),
	}
	for i := range shortlist {
		state = r.step(state, &shortlist[i], completed, required[shortlist[i].Code])
	}
	return state.out
}

func (r *Resolver) step(state resolveState, course *ScoredCourse, completed CompletedSet, prereqs []string) resolveState {
	if completed.Has(course.Code) {
		return state
	}

	missing := []string{}
	for _, code := range prereqs {
		if completed.Has(code) || contains(missing, code) {
			continue
		}
		missing = append(missing, code)

		if _, seen := state.index[code]; !seen {
			state.index[code] = len(state.out.Prioritized)
			state.out.Prioritized = append(state.out.Prioritized, PrioritizedPrerequisite{
				CourseCode: code,
				Reason:     "Required for " + course.Code,
			})
		}
	}

	status := StatusEligible
	if len(missing) > 0 {
		status = StatusPrerequisitesNeeded
	}
	state.out.Courses = append(state.out.Courses, ResolvedCourse{
		ScoredCourse: *course,
		Status:       status,
		Missing:      missing,
	})
	return state
}

// requiredByCourse groups gating prerequisite codes by course code, in
// edge order.
func (r *Resolver) requiredByCourse(edges []PrerequisiteEdge) map[string][]string {
	required := make(map[string][]string)
	for i := range edges {
		e := &edges[i]
		if _, ok := r.gating[e.Type]; !ok {
			continue
		}
		required[e.CourseCode] = append(required[e.CourseCode], e.PrerequisiteCode)
	}
	return required
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
