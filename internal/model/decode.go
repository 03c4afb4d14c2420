package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrInvalidBoard = errors.New("model: invalid board document")

const boardSchemaURL = "taskflow-board.schema.json"

const boardSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["lists", "cards"],
  "properties": {
    "lists": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    },
    "cards": {
      "type": "object",
      "additionalProperties": {"$ref": "#/$defs/card"}
    }
  },
  "$defs": {
    "card": {
      "type": "object",
      "required": ["id", "title", "list"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string"},
        "desc": {"type": "string"},
        "labels": {"type": "array", "items": {"type": "string"}},
        "due": {"type": "string"},
        "list": {"type": "string"},
        "editing": {"type": "boolean"}
      }
    }
  }
}`

var compiledBoardSchema = jsonschema.MustCompileString(boardSchemaURL, boardSchema)

// DecodeError describes why a document was rejected. Path is the JSON
// location of the first failure, empty for syntax errors.
type DecodeError struct {
	Path    string
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error { return ErrInvalidBoard }

// ParseBoard decodes and validates a serialized board document.
func ParseBoard(data []byte) (*Board, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Message: "invalid JSON: " + err.Error(), Err: err}
	}
	if dec.More() {
		return nil, &DecodeError{Message: "invalid JSON: trailing data after document"}
	}
	if err := compiledBoardSchema.Validate(raw); err != nil {
		return nil, schemaDecodeError(err)
	}

	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, &DecodeError{Message: err.Error(), Err: err}
	}
	if err := board.Validate(); err != nil {
		return nil, &DecodeError{Message: err.Error(), Err: err}
	}
	return &board, nil
}

// EncodeBoard serializes a board with two-space indentation.
func EncodeBoard(b *Board) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

func schemaDecodeError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &DecodeError{Message: err.Error(), Err: err}
	}
	leaf := firstLeaf(ve)
	return &DecodeError{Path: pointerToPath(leaf.InstanceLocation), Message: leaf.Message, Err: err}
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

func pointerToPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return "$"
	}
	parts := strings.Split(pointer, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return "$." + strings.Join(parts, ".")
}
