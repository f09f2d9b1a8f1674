package taghelpers

import "sync"

// ScopeManager keeps the stack of execution contexts of nested tag
// occurrences.
type ScopeManager struct {
	stack []*ExecutionContext
	start func()
	end   func() string
}

// NewScopeManager creates a manager that captures tag bodies with start
// and end, normally the page's writing scope methods.
func NewScopeManager(start func(), end func() string) *ScopeManager {
	return &ScopeManager{start: start, end: end}
}

// Begin opens a tag occurrence nested in the current one. Items of the
// enclosing occurrence are copied into the new one.
func (m *ScopeManager) Begin(tagName string, mode TagMode, uniqueID string, body func() error) *ExecutionContext {
	var parentItems map[any]any
	if n := len(m.stack); n > 0 {
		parentItems = m.stack[n-1].Items()
	}
	ec := newExecutionContext(tagName, mode, uniqueID, copyItems(parentItems), body, m.start, m.end)
	m.stack = append(m.stack, ec)
	return ec
}

// End closes the current occurrence and returns the enclosing one, or nil
// at the top level. Ending more occurrences than were begun panics with
// ErrScopeUnderflow.
func (m *ScopeManager) End() *ExecutionContext {
	n := len(m.stack)
	if n == 0 {
		panic(ErrScopeUnderflow)
	}
	m.stack[n-1] = nil
	m.stack = m.stack[:n-1]
	if n == 1 {
		return nil
	}
	return m.stack[n-2]
}

// Depth returns the number of open occurrences.
func (m *ScopeManager) Depth() int {
	return len(m.stack)
}

// ScopeManagerCell holds the ScopeManager of a page. The zero value is
// empty; the manager is built on the first Get.
type ScopeManagerCell struct {
	once    sync.Once
	manager *ScopeManager
}

// Get returns the manager, building it from start and end on first use.
// Later calls ignore their arguments.
func (c *ScopeManagerCell) Get(start func(), end func() string) *ScopeManager {
	c.once.Do(func() {
		c.manager = NewScopeManager(start, end)
	})
	return c.manager
}
