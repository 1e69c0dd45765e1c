package models

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "plain", raw: "Buy milk", want: "Buy milk"},
		{name: "trims surrounding whitespace", raw: "  Buy milk \n\t", want: "Buy milk"},
		{name: "keeps inner whitespace", raw: " a  b ", want: "a  b"},
		{name: "single character", raw: "x", want: "x"},
		{name: "empty", raw: "", wantErr: ErrTitleRequired},
		{name: "only whitespace", raw: " \t\n ", wantErr: ErrTitleRequired},
		{name: "exactly max", raw: strings.Repeat("a", TitleMaxLength), want: strings.Repeat("a", TitleMaxLength)},
		{name: "max after trim", raw: "   " + strings.Repeat("a", TitleMaxLength) + "   ", want: strings.Repeat("a", TitleMaxLength)},
		{name: "one over max", raw: strings.Repeat("a", TitleMaxLength+1), wantErr: ErrTitleTooLong},
		{name: "multibyte counted as characters", raw: strings.Repeat("é", TitleMaxLength), want: strings.Repeat("é", TitleMaxLength)},
		{name: "multibyte over max", raw: strings.Repeat("日", TitleMaxLength+1), wantErr: ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTitle(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NormalizeTitle(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTitleErrorMessages(t *testing.T) {
	if got := ErrTitleRequired.Error(); got != "Task title is required and must be a non-empty string" {
		t.Errorf("ErrTitleRequired = %q", got)
	}
	if got := ErrTitleTooLong.Error(); got != "Task title must not exceed 200 characters" {
		t.Errorf("ErrTitleTooLong = %q", got)
	}
}
