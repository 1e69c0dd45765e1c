package models

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// TitleMaxLength is the longest title accepted, in characters, after trimming.
const TitleMaxLength = 200

var (
	ErrTitleRequired = errors.New("Task title is required and must be a non-empty string")
	ErrTitleTooLong  = errors.New("Task title must not exceed 200 characters")
)

// NormalizeTitle trims raw and checks it against the title rule. It returns
// the trimmed title, or ErrTitleRequired / ErrTitleTooLong.
func NormalizeTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrTitleRequired
	}
	if TitleLength(title) > TitleMaxLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// TitleLength counts characters, not bytes.
func TitleLength(title string) int {
	return utf8.RuneCountInString(title)
}
