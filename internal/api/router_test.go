// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/coursepath/internal/auth"
	"github.com/tomtom215/coursepath/internal/cache"
	"github.com/tomtom215/coursepath/internal/config"
	"github.com/tomtom215/coursepath/internal/database"
	"github.com/tomtom215/coursepath/internal/middleware"
	"github.com/tomtom215/coursepath/internal/models"
	"github.com/tomtom215/coursepath/internal/recommend"
	"github.com/tomtom215/coursepath/internal/reports"
)

// envelope is the decoded APIResponse with the data left raw.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		RequestID string `json:"request_id"`
		Cached    bool   `json:"cached"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

type testServer struct {
	handler http.Handler
	db      *database.DB
}

func setupSeededDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         ":memory:",
		QueryTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.SeedDemoData(context.Background()); err != nil {
		t.Fatalf("SeedDemoData() error = %v", err)
	}
	return db
}

func newTestServer(t *testing.T, authMW *auth.Middleware, opts ...HandlerOption) *testServer {
	t.Helper()
	db := setupSeededDB(t)

	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetDataProvider(db)

	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitDisabled = true
	router := NewRouter(NewHandler(engine, db, opts...), authMW, NewChiMiddleware(mc))
	return &testServer{handler: router.Setup(), db: db}
}

func (s *testServer) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v\nbody: %s", method, target, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	if rec, _ := srv.do(t, http.MethodGet, "/api/v1/students/1/recommendations", ""); rec.Code != http.StatusOK {
		t.Fatalf("recommendations status = %d", rec.Code)
	}
	if rec, _ := srv.do(t, http.MethodGet, "/api/v1/students/999/recommendations", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown student status = %d", rec.Code)
	}

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec, env := srv.do(t, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, rec.Code)
		}
		var health models.HealthStatus
		decodeData(t, env, &health)
		if health.Status != "healthy" || !health.DatabaseConnected || health.DatabaseDriver != config.DriverSQLite {
			t.Errorf("GET %s health = %+v", path, health)
		}
		if e := health.Engine; e == nil || e.Requests != 2 || e.Errors != 1 || e.LastLatencyMS < 0 {
			t.Errorf("GET %s engine = %+v, want 2 requests and 1 error", path, e)
		}
	}
}

func TestHealth_Degraded(t *testing.T) {
	t.Parallel()
	db := setupSeededDB(t)
	h := NewHandler(nil, db, WithBreaker(staticBreaker("open")))

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var health struct {
		Status       string `json:"status"`
		BreakerState string `json:"breaker_state"`
	}
	decodeData(t, env, &health)
	if health.Status != "degraded" || health.BreakerState != "open" {
		t.Errorf("health = %+v, want degraded with open breaker", health)
	}
}

func TestHealth_CatalogCache(t *testing.T) {
	t.Parallel()
	db := setupSeededDB(t)

	snapshot := cache.New(time.Minute)
	snapshot.Set(cache.KeyCourses, []recommend.Course{})
	snapshot.Get(cache.KeyCourses)
	snapshot.Get(cache.KeyEdges)
	h := NewHandler(nil, db, WithCatalogCache(snapshot))

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var health models.HealthStatus
	decodeData(t, env, &health)
	got := health.CatalogCache
	if got == nil {
		t.Fatal("catalog_cache missing from health")
	}
	if got.Keys != 1 || got.Hits != 1 || got.Misses != 1 || got.HitRate != 50 {
		t.Errorf("catalog_cache = %+v, want 1 key, 1 hit, 1 miss, 50%% hit rate", got)
	}

	rec = httptest.NewRecorder()
	NewHandler(nil, db).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if strings.Contains(rec.Body.String(), "catalog_cache") {
		t.Error("catalog_cache reported without a cache")
	}
}

func TestRecommendations_Get(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/students/1/recommendations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if env.Status != "success" {
		t.Errorf("status field = %q", env.Status)
	}
	if id := rec.Header().Get(middleware.RequestIDHeader); id == "" || env.Metadata.RequestID != id {
		t.Errorf("metadata.request_id = %q, header = %q", env.Metadata.RequestID, id)
	}

	var payload recommend.Payload
	decodeData(t, env, &payload)
	if payload.TotalRecommendations == 0 || payload.TotalRecommendations > 5 {
		t.Fatalf("TotalRecommendations = %d", payload.TotalRecommendations)
	}

	top := payload.Recommendations[0]
	if top.CourseCode != "FIN 410" || top.RelevanceScore != 100 {
		t.Errorf("top = %s (%.2f), want FIN 410 (100.00)", top.CourseCode, top.RelevanceScore)
	}
	if top.EligibilityStatus != recommend.StatusPrerequisitesNeeded || top.SuggestedSemester != "Spring 2026" {
		t.Errorf("top eligibility = %s / %s", top.EligibilityStatus, top.SuggestedSemester)
	}
	if len(top.MissingPrerequisites) != 1 || top.MissingPrerequisites[0] != "FIN 301" {
		t.Errorf("top missing = %v, want [FIN 301]", top.MissingPrerequisites)
	}

	found := false
	for _, p := range payload.PrerequisitesToPrioritize {
		if p.CourseCode == "FIN 301" && p.Reason == "Required for FIN 410" {
			found = true
		}
	}
	if !found {
		t.Errorf("FIN 301 not prioritized: %+v", payload.PrerequisitesToPrioritize)
	}
	if payload.Metadata == nil || payload.Metadata.RequestID != env.Metadata.RequestID {
		t.Errorf("payload metadata = %+v", payload.Metadata)
	}
}

func TestRecommendations_PostOverrides(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	body := `{"preferences":{"interests":["drawing"],"preferred_difficulty":1,"strong_subjects":["Art"]}}`
	rec, env := srv.do(t, http.MethodPost, "/api/v1/students/3/recommendations", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var payload recommend.Payload
	decodeData(t, env, &payload)
	top := payload.Recommendations[0]
	if top.CourseCode != "ART 110" {
		t.Fatalf("top = %s, want ART 110", top.CourseCode)
	}
	if top.EligibilityStatus != recommend.StatusEligible || top.SuggestedSemester != "Fall 2025" {
		t.Errorf("top = %+v, want eligible for Fall 2025", top)
	}
	if payload.Student == nil || len(payload.Student.Interests) != 1 || payload.Student.Interests[0] != "drawing" {
		t.Errorf("student = %+v, want overridden interests", payload.Student)
	}
}

func TestRecommendations_Errors(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
		wantErr  string
	}{
		{"unknown student", http.MethodGet, "/api/v1/students/999/recommendations", "", http.StatusNotFound, "NOT_FOUND"},
		{"non numeric id", http.MethodGet, "/api/v1/students/abc/recommendations", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"zero id", http.MethodGet, "/api/v1/students/0/recommendations", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed body", http.MethodPost, "/api/v1/students/1/recommendations", `{"preferences":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown field", http.MethodPost, "/api/v1/students/1/recommendations", `{"prefs":{}}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"negative difficulty", http.MethodPost, "/api/v1/students/1/recommendations", `{"preferences":{"preferred_difficulty":-1}}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"blank interest", http.MethodPost, "/api/v1/students/1/recommendations", `{"preferences":{"interests":[" "]}}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := srv.do(t, tt.method, tt.target, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantErr)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantTotal int
	}{
		{"default k covers catalog", "", http.StatusOK, 11},
		{"explicit k", "?k=3", http.StatusOK, 3},
		{"k at max", "?k=100", http.StatusOK, 11},
		{"k zero", "?k=0", http.StatusBadRequest, 0},
		{"k negative", "?k=-2", http.StatusBadRequest, 0},
		{"k above max", "?k=101", http.StatusBadRequest, 0},
		{"k not a number", "?k=ten", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := srv.do(t, http.MethodGet, "/api/v1/students/2/candidates"+tt.query, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var list recommend.CandidateList
			decodeData(t, env, &list)
			if list.Total != tt.wantTotal || len(list.Courses) != tt.wantTotal {
				t.Errorf("total = %d (%d courses), want %d", list.Total, len(list.Courses), tt.wantTotal)
			}
			for i := 1; i < len(list.Courses); i++ {
				if list.Courses[i-1].RelevanceScore < list.Courses[i].RelevanceScore {
					t.Errorf("candidates not sorted at %d: %.2f < %.2f",
						i, list.Courses[i-1].RelevanceScore, list.Courses[i].RelevanceScore)
				}
			}
		})
	}
}

func TestRuns(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	ctx := context.Background()
	base := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		err := srv.db.InsertRunLog(ctx, &database.RunLogEntry{
			RunID:      id,
			Operation:  recommend.OperationRecommend,
			StudentID:  1,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
			DurationMS: 1000,
			Input:      `{"student_id":1}`,
			Status:     string(recommend.RunSuccess),
			QueryCount: 4,
		})
		if err != nil {
			t.Fatalf("InsertRunLog(%s) error = %v", id, err)
		}
	}

	rec, env := srv.do(t, http.MethodGet, "/api/v1/students/1/runs?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var data struct {
		Runs  []database.RunLogEntry `json:"runs"`
		Count int                    `json:"count"`
	}
	decodeData(t, env, &data)
	if data.Count != 2 || data.Runs[0].RunID != "run-c" || data.Runs[1].RunID != "run-b" {
		t.Errorf("runs = %+v, want run-c then run-b", data.Runs)
	}

	for _, q := range []string{"?limit=0", "?limit=201", "?limit=x"} {
		if rec, _ := srv.do(t, http.MethodGet, "/api/v1/students/1/runs"+q, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("GET runs%s status = %d, want 400", q, rec.Code)
		}
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/students/1/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var data struct {
		StudentID        int                     `json:"student_id"`
		History          []database.HistoryEntry `json:"history"`
		Count            int                     `json:"count"`
		CreditsAttempted int                     `json:"credits_attempted"`
	}
	decodeData(t, env, &data)
	if data.StudentID != 1 || data.Count != 4 || len(data.History) != 4 {
		t.Fatalf("history = %+v, want 4 entries for student 1", data)
	}
	var codes []string
	credits := 0
	for _, h := range data.History {
		codes = append(codes, h.CourseCode)
		credits += h.CreditHours
	}
	if got := strings.Join(codes, ","); got != "MATH 150,FIN 301,FIN 201,ECON 201" {
		t.Errorf("history order = %s, want newest term first", got)
	}
	if data.History[1].Grade != "F" {
		t.Errorf("FIN 301 grade = %q, want failed attempt kept", data.History[1].Grade)
	}
	if data.CreditsAttempted != credits {
		t.Errorf("credits_attempted = %d, want %d", data.CreditsAttempted, credits)
	}

	rec, env = srv.do(t, http.MethodGet, "/api/v1/students/3/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("student 3 status = %d", rec.Code)
	}
	decodeData(t, env, &data)
	if data.Count != 0 || data.CreditsAttempted != 0 {
		t.Errorf("student 3 history = %+v, want empty", data)
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/students/999/history", http.StatusNotFound},
		{"/api/v1/students/abc/history", http.StatusBadRequest},
		{"/api/v1/students/0/history", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec, _ := srv.do(t, http.MethodGet, tt.path, ""); rec.Code != tt.want {
			t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestLatestReport(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, nil)
		rec, env := srv.do(t, http.MethodGet, "/api/v1/students/1/recommendations/latest", "")
		if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
			t.Errorf("status = %d, error = %+v", rec.Code, env.Error)
		}
	})

	t.Run("stored", func(t *testing.T) {
		t.Parallel()
		store, err := reports.OpenInMemory()
		if err != nil {
			t.Fatalf("OpenInMemory() error = %v", err)
		}
		t.Cleanup(func() { _ = store.Close() })

		err = store.Save(context.Background(), &reports.Report{
			StudentID:   1,
			RunID:       "run-1",
			GeneratedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Payload:     json.RawMessage(`{"total_recommendations":0}`),
		})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		srv := newTestServer(t, nil, WithReports(store))
		rec, env := srv.do(t, http.MethodGet, "/api/v1/students/1/recommendations/latest", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !env.Metadata.Cached {
			t.Error("metadata.cached = false, want true")
		}
		var report reports.Report
		decodeData(t, env, &report)
		if report.RunID != "run-1" || string(report.Payload) != `{"total_recommendations":0}` {
			t.Errorf("report = %+v", report)
		}

		rec, _ = srv.do(t, http.MethodGet, "/api/v1/students/2/recommendations/latest", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("missing report status = %d, want 404", rec.Code)
		}
	})
}

func TestCourses(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	tests := []struct {
		name      string
		query     string
		wantCodes []string
		wantMore  bool
	}{
		{"department code", "?department=cs", []string{"CS 101", "CS 201", "CS 350"}, false},
		{"department name", "?department=Mathematics", []string{"MATH 150", "MATH 220"}, false},
		{"first page", "?limit=2", []string{"ART 110", "CS 101"}, true},
		{"second page", "?limit=2&offset=2", []string{"CS 201", "CS 350"}, true},
		{"last page", "?limit=5&offset=10", []string{"MATH 220"}, false},
		{"unknown department", "?department=History", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := srv.do(t, http.MethodGet, "/api/v1/courses"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			var list struct {
				Courses    []recommend.Course `json:"courses"`
				Total      int                `json:"total"`
				Pagination struct {
					HasMore bool `json:"has_more"`
				} `json:"pagination"`
			}
			decodeData(t, env, &list)

			got := make([]string, len(list.Courses))
			for i, c := range list.Courses {
				got[i] = c.Code
			}
			if strings.Join(got, ",") != strings.Join(tt.wantCodes, ",") {
				t.Errorf("courses = %v, want %v", got, tt.wantCodes)
			}
			if list.Total != len(tt.wantCodes) || list.Pagination.HasMore != tt.wantMore {
				t.Errorf("total = %d has_more = %v, want %d %v",
					list.Total, list.Pagination.HasMore, len(tt.wantCodes), tt.wantMore)
			}
		})
	}

	for _, q := range []string{"?limit=0", "?limit=501", "?offset=-1", "?limit=abc"} {
		if rec, _ := srv.do(t, http.MethodGet, "/api/v1/courses"+q, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("GET courses%s status = %d, want 400", q, rec.Code)
		}
	}
}

func TestDepartments(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/departments", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var departments []database.Department
	decodeData(t, env, &departments)
	if len(departments) != 5 {
		t.Fatalf("len = %d, want 5", len(departments))
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	if rec, env := srv.do(t, http.MethodGet, "/api/v1/nope", ""); rec.Code != http.StatusNotFound || env.Error == nil {
		t.Errorf("unknown route status = %d", rec.Code)
	}
	if rec, _ := srv.do(t, http.MethodDelete, "/api/v1/students/1/recommendations", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE status = %d, want 405", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	srv.do(t, http.MethodGet, "/api/v1/departments", "")
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestRouter_JWT(t *testing.T) {
	t.Parallel()

	manager, err := auth.NewJWTManager(&config.SecurityConfig{
		AuthMode:       config.AuthModeJWT,
		JWTSecret:      strings.Repeat("s", 32),
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	authMW, err := auth.NewMiddleware(manager, config.AuthModeJWT)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}
	srv := newTestServer(t, authMW)

	if rec, _ := srv.do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200 without token", rec.Code)
	}
	if rec, _ := srv.do(t, http.MethodGet, "/api/v1/departments", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", rec.Code)
	}

	token, err := manager.GenerateToken("advisor", "advisor")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("with token status = %d, want 200", rec.Code)
	}
}

func TestRouter_JWT_RecordsCaller(t *testing.T) {
	t.Parallel()
	db := setupSeededDB(t)

	manager, err := auth.NewJWTManager(&config.SecurityConfig{
		AuthMode:       config.AuthModeJWT,
		JWTSecret:      strings.Repeat("s", 32),
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	authMW, err := auth.NewMiddleware(manager, config.AuthModeJWT)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}
	engine := &capturingEngine{}
	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitDisabled = true
	handler := NewRouter(NewHandler(engine, db), authMW, NewChiMiddleware(mc)).Setup()

	token, err := manager.GenerateToken("advisor7", "advisor")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/2/recommendations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if engine.last.StudentID != 2 || engine.last.RequestedBy != "advisor7" {
		t.Errorf("engine request = %+v, want student 2 requested by advisor7", engine.last)
	}
	if engine.last.RequestID == "" || engine.last.RequestID != rec.Header().Get(middleware.RequestIDHeader) {
		t.Errorf("request_id = %q, want the X-Request-ID header", engine.last.RequestID)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()
	db := setupSeededDB(t)

	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitRequests = 1
	mc.RateLimitWindow = time.Minute
	handler := NewRouter(NewHandler(nil, db), nil, NewChiMiddleware(mc)).Setup()

	codes := make([]int, 2)
	for i := range codes {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil))
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}
