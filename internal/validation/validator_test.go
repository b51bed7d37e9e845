// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package validation

import (
	"strings"
	"testing"
)

type sampleRecord struct {
	Code       string   `json:"course_code" validate:"notblank"`
	Difficulty int      `json:"difficulty_level" validate:"gte=1,lte=10"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Mode       string   `json:"mode" validate:"omitempty,oneof=online in-person hybrid"`
	Tags       []string `json:"tags" validate:"dive,notblank"`
	Name       string   `validate:"max=5"`
}

func validSample() sampleRecord {
	return sampleRecord{Code: "FIN 301", Difficulty: 3, Name: "ok"}
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*sampleRecord)
		wantField string
		wantMsg   string
	}{
		{name: "valid", modify: func(*sampleRecord) {}},
		{name: "blank code", modify: func(r *sampleRecord) { r.Code = "   " }, wantField: "course_code", wantMsg: "course_code must not be blank"},
		{name: "empty code", modify: func(r *sampleRecord) { r.Code = "" }, wantField: "course_code", wantMsg: "course_code must not be blank"},
		{name: "difficulty too low", modify: func(r *sampleRecord) { r.Difficulty = 0 }, wantField: "difficulty_level", wantMsg: "difficulty_level must be greater than or equal to 1"},
		{name: "bad email", modify: func(r *sampleRecord) { r.Email = "nope" }, wantField: "email", wantMsg: "email must be a valid email address"},
		{name: "bad mode", modify: func(r *sampleRecord) { r.Mode = "mail" }, wantField: "mode", wantMsg: "mode must be one of: online in-person hybrid"},
		{name: "blank tag", modify: func(r *sampleRecord) { r.Tags = []string{"a", " "} }, wantField: "tags[1]", wantMsg: "tags[1] must not be blank"},
		{name: "no json tag uses field name", modify: func(r *sampleRecord) { r.Name = "toolong" }, wantField: "Name", wantMsg: "Name must be at most 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := validSample()
			tt.modify(&rec)
			verr := ValidateStruct(&rec)

			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			first, ok := verr.First()
			if !ok {
				t.Fatal("First() reported no errors")
			}
			if first.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", first.Field, tt.wantField)
			}
			if first.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", first.Message, tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	rec := sampleRecord{Code: "", Difficulty: 0}
	verr := ValidateStruct(&rec)
	if verr == nil {
		t.Fatal("expected validation failure")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "course_code") || !strings.Contains(apiErr.Message, "difficulty_level") {
		t.Errorf("Message = %q, want both fields", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
}
