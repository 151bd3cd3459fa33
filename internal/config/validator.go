package config

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compileSchema compiles the embedded config schema once.
func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse embedded schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("config_v1.json", doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, schemaErr = compiler.Compile("config_v1.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// validateDocument checks a decoded YAML config document against the
// embedded JSON schema and flattens any violations into one error.
func validateDocument(file string, doc any) error {
	s, err := compileSchema()
	if err != nil {
		return err
	}

	err = s.Validate(doc)
	if err == nil {
		return nil
	}

	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		msgs := collectSchemaErrors(validationErr)
		return fmt.Errorf("invalid config %s: %s", file, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("invalid config %s: %w", file, err)
}

// collectSchemaErrors walks a validation error and its causes,
// producing one message per violation with its document path.
func collectSchemaErrors(err *jsonschema.ValidationError) []string {
	var msgs []string

	if len(err.Causes) == 0 {
		path := strings.Join(err.InstanceLocation, ".")
		if path == "" {
			path = "(root)"
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", path, err.Error()))
	}

	for _, cause := range err.Causes {
		msgs = append(msgs, collectSchemaErrors(cause)...)
	}
	return msgs
}
