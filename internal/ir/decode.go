package ir

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema/ir-document.schema.json
var documentSchema []byte

// ErrSchema is returned when a document does not conform to the IR schema.
var ErrSchema = errors.New("IR document does not match schema")

// Format selects the encoding of an IR document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks the format from a file extension; anything that is
// not .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// SchemaError lists every schema violation found in one document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchema, strings.Join(e.Problems, "; "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// Schema returns the embedded JSON schema for IR documents.
func Schema() []byte {
	return documentSchema
}

// LoadFile reads and decodes the IR document at path.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read IR document: %w", err)
	}
	doc, err := Decode(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode parses data, checks it against the IR schema and builds the tree.
func Decode(data []byte, format Format) (*Node, error) {
	generic, err := decodeGeneric(data, format)
	if err != nil {
		return nil, err
	}
	if err := CheckSchema(generic); err != nil {
		return nil, err
	}

	// The generic value is valid JSON by now; round-trip it into the typed tree.
	normalized, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("normalize IR document: %w", err)
	}
	var doc Node
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("decode IR document: %w", err)
	}
	return &doc, nil
}

// CheckSchema validates an already decoded generic document.
func CheckSchema(generic any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(documentSchema),
		gojsonschema.NewGoLoader(generic),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	schemaErr := &SchemaError{}
	for _, verr := range result.Errors() {
		schemaErr.Problems = append(schemaErr.Problems, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}
	return schemaErr
}

func decodeGeneric(data []byte, format Format) (any, error) {
	var generic any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&generic); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}
	return generic, nil
}

// Encode serializes a tree as indented JSON.
func Encode(doc *Node) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode IR document: %w", err)
	}
	return out, nil
}
