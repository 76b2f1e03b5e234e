// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package validation

import (
	"strings"
	"sync"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

func TestGetValidator_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q := FeedQuery{Page: 1, Limit: 10}
			if err := ValidateStruct(&q); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
}

// ===================================================================================================
// FeedQuery Tests
// ===================================================================================================

func TestValidateStruct_FeedQuery(t *testing.T) {
	tests := []struct {
		name      string
		input     FeedQuery
		wantErr   bool
		wantField string
	}{
		{"defaults", FeedQuery{Page: 1, Limit: 10}, false, ""},
		{"refresh", FeedQuery{Page: 9, Limit: 50, Refresh: true}, false, ""},
		{"zero page", FeedQuery{Page: 0, Limit: 10}, true, "Page"},
		{"zero limit", FeedQuery{Page: 1, Limit: 0}, true, "Limit"},
		{"huge limit", FeedQuery{Page: 1, Limit: 5000}, true, "Limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if got := err.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("Field() = %q, want %q", got, tt.wantField)
			}
		})
	}
}

// ===================================================================================================
// AudioProxyRequest Tests
// ===================================================================================================

func TestValidateStruct_AudioProxyRequest(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
		wantTag string
	}{
		{"https://text.pollinations.ai/hello?model=openai-audio&voice=nova", false, ""},
		{"http://audio.pollinations.ai/clip.mp3", false, ""},
		{"", true, "required"},
		{"not a url", true, "abs_http_url"},
		{"ftp://text.pollinations.ai/file", true, "abs_http_url"},
		{"/relative/path", true, "abs_http_url"},
		{"https://user:pw@text.pollinations.ai/x", true, "abs_http_url"},
		{"https://" + strings.Repeat("a", 5000) + ".com", true, "max"},
	}

	for _, tt := range tests {
		t.Run(tt.url[:min(len(tt.url), 40)], func(t *testing.T) {
			req := AudioProxyRequest{URL: tt.url}
			err := ValidateStruct(&req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil {
				if got := err.Errors()[0].Tag(); got != tt.wantTag {
					t.Errorf("Tag() = %q, want %q", got, tt.wantTag)
				}
			}
		})
	}
}

func TestValidateStruct_LiveFeedQuery(t *testing.T) {
	for _, mode := range []string{"", "mock", "json", "stream"} {
		q := LiveFeedQuery{Mode: mode}
		if err := ValidateStruct(&q); err != nil {
			t.Errorf("mode %q: unexpected error %v", mode, err)
		}
	}
	q := LiveFeedQuery{Mode: "kafka"}
	if err := ValidateStruct(&q); err == nil {
		t.Error("expected error for unknown mode")
	}
}

// ===================================================================================================
// Error Translation Tests
// ===================================================================================================

func TestToAPIError_Single(t *testing.T) {
	err := ValidateStruct(&AudioProxyRequest{})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "URL is required" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "URL" {
		t.Errorf("Details[field] = %v", apiErr.Details["field"])
	}
}

func TestToAPIError_Multiple(t *testing.T) {
	err := ValidateStruct(&FeedQuery{Page: 0, Limit: 0})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if !strings.Contains(apiErr.Message, "Page: Page must be at least 1") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %#v", apiErr.Details["fields"])
	}
}

func TestToAPIError_Empty(t *testing.T) {
	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if ve.ToAPIError().Message != "Validation failed" {
		t.Errorf("Message = %q", ve.ToAPIError().Message)
	}
}

func TestTranslateError_StringMax(t *testing.T) {
	err := ValidateStruct(&AudioProxyRequest{URL: "https://" + strings.Repeat("b", 4100) + ".com"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Errors()[0].Error(); got != "URL must be at most 4096 characters" {
		t.Errorf("message = %q", got)
	}
}
