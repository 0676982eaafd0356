package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSiteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SiteError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestSiteError_WithContext(t *testing.T) {
	err := New(CategoryContent, SeverityFatal, "nav target missing").
		WithContext("entry", "docs").
		WithContext("tried", "README.md,index.md")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}

	if err.Context["entry"] != "docs" {
		t.Errorf("Context[entry] = %v, want docs", err.Context["entry"])
	}

	if err.Context["tried"] != "README.md,index.md" {
		t.Errorf("Context[tried] = %v, want README.md,index.md", err.Context["tried"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	renderErr := New(CategoryRender, SeverityError, "render error")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match render category", configErr, CategoryRender, false},
		{"render error matches render category", renderErr, CategoryRender, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsCategory(test.err, test.category)
			if result != test.expected {
				t.Errorf("IsCategory() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(cause, CategoryBuild, SeverityFatal, "build failed")
	if !stdErrors.Is(err, cause) {
		t.Errorf("wrapped SiteError should match its cause via errors.Is")
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("ConfigNotFound", func(t *testing.T) {
		err := ConfigNotFound("/path/to/mdsite.yaml")
		if err.Category != CategoryConfig {
			t.Errorf("Category = %v, want %v", err.Category, CategoryConfig)
		}
		if err.Severity != SeverityFatal {
			t.Errorf("Severity = %v, want %v", err.Severity, SeverityFatal)
		}
		if err.Context["path"] != "/path/to/mdsite.yaml" {
			t.Errorf("Context[path] = %v, want /path/to/mdsite.yaml", err.Context["path"])
		}
	})

	t.Run("RenderError", func(t *testing.T) {
		cause := fmt.Errorf("bad fence")
		err := RenderError("docs/guide.md", cause)
		if err.Category != CategoryRender {
			t.Errorf("Category = %v, want %v", err.Category, CategoryRender)
		}
		if !stdErrors.Is(err, cause) {
			t.Errorf("Cause should match wrapped cause: %v", cause)
		}
		if err.Context["file"] != "docs/guide.md" {
			t.Errorf("Context[file] = %v, want docs/guide.md", err.Context["file"])
		}
	})

	t.Run("ValidationFailed", func(t *testing.T) {
		err := ValidationFailed("nav", "entry must be a string or single-key mapping")
		if err.Category != CategoryValidation {
			t.Errorf("Category = %v, want %v", err.Category, CategoryValidation)
		}
		if err.Context["field"] != "nav" {
			t.Errorf("Context[field] = %v, want nav", err.Context["field"])
		}
	})
}
