// Package backend selects how an IR document is turned into Go source:
// the runtime backend emits code that renders pages, the design-time
// backend emits code that only keeps the template's expressions visible to
// the type checker.
package backend

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lhaig/tagc/internal/codegen"
	"github.com/lhaig/tagc/internal/ir"
)

// ErrUnknownBackend is returned by New for names no backend answers to.
var ErrUnknownBackend = errors.New("unknown backend")

// Backend is the interface all code generation backends implement.
type Backend interface {
	// Name returns the backend name ("runtime" or "designtime").
	Name() string
	// Generate renders doc as the Go file fileName.
	Generate(doc *ir.Node, fileName string) *codegen.Result
}

// Options are shared by every backend.
type Options struct {
	Symbols       codegen.Symbols
	RuntimeImport string
	// StableIDs numbers tag occurrences from 1 in every document instead
	// of drawing random identifiers, so output is reproducible.
	StableIDs bool
}

// Names lists the available backends.
func Names() []string {
	return []string{RuntimeName, DesignTimeName}
}

// New returns the backend called name.
func New(name string, opts Options) (Backend, error) {
	switch name {
	case RuntimeName:
		return &Runtime{opts: opts}, nil
	case DesignTimeName:
		return &DesignTime{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownBackend, name, Names())
	}
}

// ForMode returns the runtime or design-time backend.
func ForMode(designTime bool, opts Options) Backend {
	if designTime {
		return &DesignTime{opts: opts}
	}
	return &Runtime{opts: opts}
}

func (o Options) codegen(designTime bool, fileName string) codegen.Options {
	out := codegen.Options{
		DesignTime:        designTime,
		Symbols:           o.Symbols,
		RuntimeImport:     o.RuntimeImport,
		GeneratedFileName: fileName,
	}
	if o.StableIDs {
		out.IDs = &codegen.SequentialIDs{}
	}
	return out
}

// IsKnown reports whether name is a backend name.
func IsKnown(name string) bool {
	return slices.Contains(Names(), name)
}
