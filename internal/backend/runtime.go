package backend

import (
	"github.com/lhaig/tagc/internal/codegen"
	"github.com/lhaig/tagc/internal/ir"
)

// Backend names.
const (
	RuntimeName    = "runtime"
	DesignTimeName = "designtime"
)

// Runtime emits pages that create, run and render their tag helpers.
type Runtime struct {
	opts Options
}

// Name returns the backend name.
func (b *Runtime) Name() string {
	return RuntimeName
}

// Generate renders doc in runtime mode.
func (b *Runtime) Generate(doc *ir.Node, fileName string) *codegen.Result {
	return codegen.Generate(doc, b.opts.codegen(false, fileName))
}

// DesignTime emits the same structure without runtime calls, for editors
// and analysis tools.
type DesignTime struct {
	opts Options
}

// Name returns the backend name.
func (b *DesignTime) Name() string {
	return DesignTimeName
}

// Generate renders doc in design-time mode.
func (b *DesignTime) Generate(doc *ir.Node, fileName string) *codegen.Result {
	return codegen.Generate(doc, b.opts.codegen(true, fileName))
}
