package task

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasklist-go/internal/utils"
)

//go:embed tasks.schema.json
var schemaJSON string

const schemaURL = "https://github.com/nibzard/tasklist-go/tasks.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema that task files are validated against.
func Schema() string {
	return schemaJSON
}

func taskSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load task schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile task schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// Validate checks raw task file contents against the task schema.
// Malformed JSON is reported as a parse error; schema violations are
// reported as ValidationErrors, one entry per violation.
func Validate(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse task file: %w", err)
	}

	schema, err := taskSchema()
	if err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return err
		}
		var errs ValidationErrors
		collectSchemaErrors(&errs, ve)
		return errs
	}
	return nil
}

func collectSchemaErrors(errs *ValidationErrors, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}
