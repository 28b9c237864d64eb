package server

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const feedbackRequestSchema = `{
  "type": "object",
  "properties": {
    "level": {"type": "string", "minLength": 1},
    "analysisType": {"type": "string", "minLength": 1},
    "depth": {"type": "integer", "minimum": 1, "maximum": 3},
    "text": {"type": "string"}
  },
  "required": ["level", "analysisType", "depth", "text"],
  "additionalProperties": false
}`

const parseRequestSchema = `{
  "type": "object",
  "properties": {
    "raw": {"type": "string"}
  },
  "required": ["raw"],
  "additionalProperties": false
}`

// bodySchemas holds the compiled schema of every POST body.
type bodySchemas struct {
	feedback *jsonschema.Schema
	parse    *jsonschema.Schema
}

func compileSchemas() (*bodySchemas, error) {
	fb, err := compileSchema("feedback-request", feedbackRequestSchema)
	if err != nil {
		return nil, err
	}
	p, err := compileSchema("parse-request", parseRequestSchema)
	if err != nil {
		return nil, err
	}
	return &bodySchemas{feedback: fb, parse: p}, nil
}

func compileSchema(name, def string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}
	return compiled, nil
}

// validateBody checks raw JSON against sch.
func validateBody(sch *jsonschema.Schema, raw []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
