package httpx

import (
	"strings"
	"testing"
	"time"
)

type testBook struct {
	Title string `json:"title" validate:"required,min=1,max=50"`
	Year  *int   `json:"year" validate:"omitempty,gte=1,notfuture"`
}

type testQuery struct {
	Limit int `query:"limit" validate:"gte=1"`
}

func intPtr(v int) *int { return &v }

func TestValidateStruct_ValidInput(t *testing.T) {
	if errs := ValidateStruct(testBook{Title: "Dune", Year: intPtr(1965)}); len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %v", errs)
	}
	if errs := ValidateStruct(testBook{Title: "Beowulf"}); len(errs) != 0 {
		t.Errorf("Expected nil year to be allowed, got %v", errs)
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		field   string
		message string
	}{
		{"required", testBook{}, "title", "required"},
		{"max", testBook{Title: strings.Repeat("x", 51)}, "title", "at most 50"},
		{"gte", testBook{Title: "T", Year: intPtr(0)}, "year", "greater than or equal to 1"},
		{"query tag name", testQuery{}, "limit", "greater than or equal to 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.in)
			if len(errs) != 1 {
				t.Fatalf("Expected one error, got %v", errs)
			}
			if errs[0].Field != tt.field || !strings.Contains(errs[0].Message, tt.message) {
				t.Errorf("Unexpected error %+v", errs[0])
			}
		})
	}
}

func TestValidateStruct_NotFuture(t *testing.T) {
	now = func() time.Time { return time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	if errs := ValidateStruct(testBook{Title: "T", Year: intPtr(2000)}); len(errs) != 0 {
		t.Errorf("Expected current year to be valid, got %v", errs)
	}

	errs := ValidateStruct(testBook{Title: "T", Year: intPtr(2001)})
	if len(errs) != 1 || errs[0].Message != "year cannot be in the future" {
		t.Errorf("Expected future year error, got %v", errs)
	}
}

func TestDetails(t *testing.T) {
	details := Details([]ValidationError{{Field: "title", Message: "title is required"}})
	if len(details) != 1 || details[0].Field != "title" {
		t.Errorf("Unexpected details %+v", details)
	}
}
