package api

import (
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// createTaskSchema checks the request shape only: an object with a string
// title. Trimming and length are checked by models.NormalizeTitle.
const createTaskSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["title"],
	"properties": {
		"title": {"type": "string"}
	}
}`

var createTaskValidator = jsonschema.MustCompileString("create_task.json", createTaskSchema)

// validateCreateShape validates a decoded JSON document.
func validateCreateShape(doc any) error {
	return createTaskValidator.Validate(doc)
}
