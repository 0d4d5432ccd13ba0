package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestAnalyzerError_Error(t *testing.T) {
	err := New(CategoryParse, CodeInvalidData, "bad row")
	if err.Error() != "bad row" {
		t.Errorf("Expected 'bad row', got %q", err.Error())
	}

	err = err.WithSuggestion("fix the row")
	expected := "bad row (suggestion: fix the row)"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestAnalyzerError_GetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		category ErrorCategory
		want     int
	}{
		{"File error", CategoryFile, 2},
		{"Parse error", CategoryParse, 3},
		{"Validation error", CategoryValidation, 3},
		{"Configuration error", CategoryConfiguration, 4},
		{"Analysis error", CategoryAnalysis, 5},
		{"Internal error", CategoryInternal, 5},
		{"Unknown category", ErrorCategory("other"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.category, CodeUnexpectedError, "boom")
			if got := err.GetExitCode(); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, CategoryFile, CodeFileNotFound, "nope") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	cause := fmt.Errorf("underlying")
	err := Wrap(cause, CategoryFile, CodeFileNotFound, "file missing")
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestFileError(t *testing.T) {
	err := FileError(CodeFileNotFound, "/tmp/missing.csv", nil)
	if err.Category != CategoryFile {
		t.Errorf("Expected file category, got %s", err.Category)
	}
	if !strings.Contains(err.Message, "/tmp/missing.csv") {
		t.Errorf("Expected message to name the path, got %q", err.Message)
	}
	if err.Context["file_path"] != "/tmp/missing.csv" {
		t.Error("Expected file_path context")
	}
}

func TestParseError_MissingColumn(t *testing.T) {
	err := ParseError(CodeMissingColumn, "input.csv", 1, "date", "", nil)
	if !strings.Contains(err.Message, "date") {
		t.Errorf("Expected message to name the missing column, got %q", err.Message)
	}
	if err.GetExitCode() != 3 {
		t.Errorf("Expected exit code 3, got %d", err.GetExitCode())
	}
}

func TestAsAnalyzerError(t *testing.T) {
	plain := fmt.Errorf("plain error")
	if _, ok := AsAnalyzerError(plain); ok {
		t.Error("Plain error should not convert")
	}

	wrapped := fmt.Errorf("outer: %w", New(CategoryConfiguration, CodeInvalidConfig, "bad config"))
	analyzerErr, ok := AsAnalyzerError(wrapped)
	if !ok {
		t.Fatal("Expected to extract AnalyzerError from chain")
	}
	if analyzerErr.Category != CategoryConfiguration {
		t.Errorf("Expected configuration category, got %s", analyzerErr.Category)
	}
}

func TestWrapIfNeeded(t *testing.T) {
	original := New(CategoryParse, CodeInvalidData, "already wrapped")
	result := WrapIfNeeded(original, CategoryInternal, CodeUnexpectedError, "ignored")
	if result != original {
		t.Error("WrapIfNeeded should return the existing AnalyzerError unchanged")
	}

	if WrapIfNeeded(nil, CategoryInternal, CodeUnexpectedError, "ignored") != nil {
		t.Error("WrapIfNeeded(nil) should return nil")
	}
}
