// Package analysis inspects an assembled program for control-flow
// problems: branches whose target is not an instruction, code no
// execution path reaches, and paths that can run off the end of the
// image.
package analysis

import "github.com/orionrisc/orion-asm/assembler"

// Analyzer represents the interface for the analyzer.
type Analyzer interface {
	// Analyze inspects a successfully assembled program and returns any
	// issues found.
	Analyze(result *assembler.Result) ([]*Issue, error)

	// TraceStack generates the chain of callers reaching a label, to
	// debug why a segment is live.
	TraceStack(result *assembler.Result, label string) (*IssueSource, error)
}

// IssueSeverity represents the severity level of an issue.
type IssueSeverity string

const (
	IssueSeverityCritical IssueSeverity = "CRITICAL"
	IssueSeverityWarning  IssueSeverity = "WARNING"
)

// Issue represents a single issue found by the analyzer.
type Issue struct {
	Source   *IssueSource  `json:"source"`
	Message  string        `json:"message"` // A description of the issue.
	Severity IssueSeverity `json:"severity"`
}

// IssueSource represents a location in the image where the issue
// originates.
type IssueSource struct {
	Address   uint32       `json:"address"`             // word address of the issue
	Segment   string       `json:"segment"`             // enclosing label, empty before the first label
	CallStack *IssueSource `json:"callStack,omitempty"` // the callers leading to this source
}

// Copy creates a deep copy of the IssueSource.
func (src *IssueSource) Copy() *IssueSource {
	if src == nil {
		return nil
	}
	return &IssueSource{
		Address:   src.Address,
		Segment:   src.Segment,
		CallStack: src.CallStack.Copy(),
	}
}

// AddCallStack appends a caller to the end of the chain.
func (src *IssueSource) AddCallStack(stack *IssueSource) {
	if src.CallStack == nil {
		src.CallStack = stack
		return
	}
	src.CallStack.AddCallStack(stack)
}
