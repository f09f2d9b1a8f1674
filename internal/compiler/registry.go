package compiler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// documentExtensions are the file types Discover picks up in directories.
var documentExtensions = []string{".json", ".yaml", ".yml"}

// Discover expands paths into the list of IR documents to compile. Files
// are taken as given; directories are walked for .json, .yaml and .yml
// files. The result is cleaned, de-duplicated and sorted so batch output
// does not depend on argument order.
func Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var docs []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			docs = append(docs, path)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("document not found: %w", err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Skip hidden directories and testdata, like the go tool.
				if path != p && (strings.HasPrefix(d.Name(), ".") || d.Name() == "testdata") {
					return filepath.SkipDir
				}
				return nil
			}
			if isDocument(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	slices.Sort(docs)
	return docs, nil
}

func isDocument(path string) bool {
	return slices.Contains(documentExtensions, strings.ToLower(filepath.Ext(path)))
}
