package handler

import (
	"testing"
)

func intPtr(v int) *int { return &v }

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"missing code", &seedRequest{Value: intPtr(5)}, "code is required"},
		{"missing value", &seedRequest{Code: "x"}, "value is required"},
		{"value too large", &seedRequest{Code: "x", Value: intPtr(101)}, "value must be at most 100"},
		{"value negative", &seedRequest{Code: "x", Value: intPtr(-1)}, "value must be at least 0"},
		{"bad role", &registerRequest{Role: "root"}, "role must be one of: user, admin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.in)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if err.Error() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&seedRequest{Code: " ", Value: intPtr(0)}); err != nil {
		t.Fatalf("expected whitespace code with value 0 to be valid, got %v", err)
	}
	if err := v.Validate(&registerRequest{}); err != nil {
		t.Fatalf("expected empty role to be valid, got %v", err)
	}
}
