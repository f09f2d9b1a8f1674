// Package formatter rewrites IR documents in canonical form: fields in
// declaration order, empty fields dropped and two-space indentation. YAML
// documents come out in block style with quotes only where YAML needs them.
package formatter

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lhaig/tagc/internal/ir"
)

// Format renders doc in the given encoding.
func Format(doc *ir.Node, format ir.Format) ([]byte, error) {
	data, err := ir.Encode(doc)
	if err != nil {
		return nil, err
	}
	if format == ir.FormatJSON {
		return append(data, '\n'), nil
	}

	// JSON is YAML; going through yaml.Node keeps the field order.
	var tree yaml.Node
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("convert IR document to YAML: %w", err)
	}
	clearStyle(&tree)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&tree); err != nil {
		return nil, fmt.Errorf("encode IR document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode IR document: %w", err)
	}
	return buf.Bytes(), nil
}

// clearStyle drops the flow and quoting styles carried over from JSON.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		clearStyle(child)
	}
}

// File formats the document at path in its own encoding and reports
// whether the result differs from the file.
func File(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read IR document: %w", err)
	}
	format := ir.FormatForPath(path)
	doc, err := ir.Decode(data, format)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	out, err := Format(doc, format)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return out, !bytes.Equal(data, out), nil
}
