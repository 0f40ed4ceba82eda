package application

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "groupID",
			value:     "0b6f2c1e",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "groupID",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "groupID",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if !strings.Contains(valErr.Message, "group ID is required") {
					t.Errorf("unexpected message %q", valErr.Message)
				}
			}
		})
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		wantErr bool
		errMsg  string
	}{
		{"one path", []string{"/logs/a-audit.json"}, false, ""},
		{"several paths", []string{"a-audit.json", "b-audit.json"}, false, ""},
		{"nil", nil, true, "at least one of manifest paths"},
		{"blank entry", []string{"a-audit.json", " "}, true, "manifest paths[1] is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaths("paths", tt.paths)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIsManifest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/logs/run-audit.json", true},
		{`C:\logs\RUN-AUDIT.JSON`, true},
		{"/logs/run-audit.json.gz", false},
		{"/logs/app.log", false},
	}

	for _, tt := range tests {
		if got := IsManifest(tt.path); got != tt.want {
			t.Errorf("IsManifest(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
