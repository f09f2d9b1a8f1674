package compiler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultSuffix replaces the extension of an IR document to name its
// generated file.
const DefaultSuffix = ".tagc.go"

// OutputPath returns where the file generated from docPath goes:
// views/index.yaml becomes views/index.tagc.go, or outDir/index.tagc.go
// when outDir is set.
func OutputPath(docPath, outDir, suffix string) string {
	base := filepath.Base(docPath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + suffix
	if outDir == "" {
		return filepath.Join(filepath.Dir(docPath), base)
	}
	return filepath.Join(outDir, base)
}

// Write writes the generated source of res to res.OutPath, creating the
// directory if needed. It returns the number of bytes written.
func Write(res *Result) (int, error) {
	if res.HasErrors() || res.Source == nil {
		return 0, fmt.Errorf("%s: nothing to write", res.Path)
	}
	if dir := filepath.Dir(res.OutPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := os.WriteFile(res.OutPath, res.Source, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write output file: %w", err)
	}
	return len(res.Source), nil
}

// Stale compares res with the file already at res.OutPath. It returns a
// line diff (empty when the file is current); a missing file is stale and
// diffs against nothing.
func Stale(res *Result) (string, bool, error) {
	current, err := os.ReadFile(res.OutPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("failed to read %s: %w", res.OutPath, err)
	}
	if string(current) == string(res.Source) {
		return "", false, nil
	}
	return LineDiff(string(current), string(res.Source)), true, nil
}

// LineDiff renders the line-level changes from old to new, one line per
// changed line, prefixed with "-" or "+".
func LineDiff(old, new string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
