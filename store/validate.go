package store

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"task-manager/models"
)

// ValidationError is returned when a record fails the store's own checks.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "Task validation failed: " + e.Field + ": " + e.Message
}

type taskRecord struct {
	Title string `validate:"required,max=200"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// prepareTitle trims title and validates it before any backend write.
func prepareTitle(title string) (string, error) {
	rec := taskRecord{Title: strings.TrimSpace(title)}
	if err := validate.Struct(rec); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return "", err
		}
		fe := fieldErrs[0]
		msg := "Task title is invalid"
		switch fe.Tag() {
		case "required":
			msg = "Task title is required"
		case "max":
			msg = models.ErrTitleTooLong.Error()
		}
		return "", &ValidationError{Field: "title", Message: msg}
	}
	return rec.Title, nil
}
