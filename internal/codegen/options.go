package codegen

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// DefaultRuntimeImport is the import path of the runtime library the
// generated code calls.
const DefaultRuntimeImport = "github.com/lhaig/tagc/pkg/taghelpers"

// Symbols are the identifiers generated code shares with the runtime
// library. They are emitted verbatim.
type Symbols struct {
	Receiver                  string
	RuntimePackage            string
	ExecutionContextVariable  string
	RunnerVariable            string
	ScopeManagerVariable      string
	StringValueBufferVariable string
}

// DefaultSymbols returns the identifiers understood by pkg/taghelpers.
func DefaultSymbols() Symbols {
	return Symbols{
		Receiver:                  "p",
		RuntimePackage:            "taghelpers",
		ExecutionContextVariable:  "__tagHelperExecutionContext",
		RunnerVariable:            "__tagHelperRunner",
		ScopeManagerVariable:      "__tagHelperScopeManager",
		StringValueBufferVariable: "__tagHelperStringValueBuffer",
	}
}

// Runtime method and function names.
const (
	beginMethod                     = "Begin"
	endMethod                       = "End"
	addMethod                       = "Add"
	runMethod                       = "Run"
	outputMethod                    = "Output"
	isContentModifiedMethod         = "IsContentModified"
	setOutputContentMethod          = "SetOutputContent"
	addHTMLAttributeMethod          = "AddHTMLAttribute"
	addTagHelperAttributeMethod     = "AddTagHelperAttribute"
	beginAddHTMLAttributeValues     = "BeginAddHTMLAttributeValues"
	addHTMLAttributeValueMethod     = "AddHTMLAttributeValue"
	endAddHTMLAttributeValues       = "EndAddHTMLAttributeValues"
	beginWriteTagHelperAttribute    = "BeginWriteTagHelperAttribute"
	endWriteTagHelperAttribute      = "EndWriteTagHelperAttribute"
	startTagHelperWritingScope      = "StartTagHelperWritingScope"
	endTagHelperWritingScope        = "EndTagHelperWritingScope"
	writeMethod                     = "Write"
	writeLiteralMethod              = "WriteLiteral"
	pushWriterMethod                = "PushWriter"
	popWriterMethod                 = "PopWriter"
	createTagHelperFunc             = "CreateTagHelper"
	invalidIndexerAssignmentFunc    = "InvalidIndexerAssignment"
	htmlStringType                  = "HTMLString"
	templateFunc                    = "Template"
	writerType                      = "Writer"
	scopeManagerGetMethod           = "Get"
	templateWriterParameter         = "w"
	tagModeConstPrefix              = "TagMode"
	valueStyleConstPrefix           = "ValueStyle"
	executionContextType            = "ExecutionContext"
	runnerType                      = "Runner"
	scopeManagerCellType            = "ScopeManagerCell"
	contextParameter                = "ctx"
	defaultGeneratedFileName        = "tagc.generated.go"
	generatedHeader                 = "// Code generated by tagc. DO NOT EDIT."
	contextImport                   = "context"
	executeSignature                = "(ctx context.Context) error"
)

// uniqueIDKey is the type of UniqueIDKey.
type uniqueIDKey struct{}

// UniqueIDKey is the Items key that, when set to a string, replaces every
// generated tag occurrence identifier with that value.
var UniqueIDKey = uniqueIDKey{}

// IDSource supplies tag occurrence identifiers.
type IDSource interface {
	NextID() string
}

// IDSourceFunc adapts a function to IDSource.
type IDSourceFunc func() string

// NextID calls f.
func (f IDSourceFunc) NextID() string { return f() }

// UUIDs returns random 32-digit hexadecimal identifiers. Identifiers are
// unique per process, so output differs between runs.
type UUIDs struct{}

// NextID returns a fresh random identifier.
func (UUIDs) NextID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SequentialIDs returns 1, 2, 3, ... formatted like the UUIDs source. The
// zero value starts at 1. It is safe for concurrent use, but a generation
// pass that needs reproducible output should own its own counter.
type SequentialIDs struct {
	n atomic.Uint64
}

// NextID returns the next identifier in the sequence.
func (s *SequentialIDs) NextID() string {
	return fmt.Sprintf("%032x", s.n.Add(1))
}

// Options configure one generation pass.
type Options struct {
	// DesignTime selects the design-time emission mode.
	DesignTime bool
	Symbols    Symbols
	// RuntimeImport is the import path of the runtime library.
	RuntimeImport string
	// GeneratedFileName is the name the output will be written under. It
	// is referenced by the directives that end line pragma regions.
	GeneratedFileName string
	// IDs supplies tag occurrence identifiers; nil means UUIDs.
	IDs IDSource
	// Items is a side channel for extensions and tests, see UniqueIDKey.
	Items map[any]any
}

func (o Options) withDefaults() Options {
	def := DefaultSymbols()
	s := &o.Symbols
	if s.Receiver == "" {
		s.Receiver = def.Receiver
	}
	if s.RuntimePackage == "" {
		s.RuntimePackage = def.RuntimePackage
	}
	if s.ExecutionContextVariable == "" {
		s.ExecutionContextVariable = def.ExecutionContextVariable
	}
	if s.RunnerVariable == "" {
		s.RunnerVariable = def.RunnerVariable
	}
	if s.ScopeManagerVariable == "" {
		s.ScopeManagerVariable = def.ScopeManagerVariable
	}
	if s.StringValueBufferVariable == "" {
		s.StringValueBufferVariable = def.StringValueBufferVariable
	}
	if o.RuntimeImport == "" {
		o.RuntimeImport = DefaultRuntimeImport
	}
	if o.GeneratedFileName == "" {
		o.GeneratedFileName = defaultGeneratedFileName
	}
	if o.IDs == nil {
		o.IDs = UUIDs{}
	}
	if o.Items == nil {
		o.Items = make(map[any]any)
	}
	return o
}
