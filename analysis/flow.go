package analysis

import (
	"fmt"

	"github.com/orionrisc/orion-asm/assembler"
	"github.com/orionrisc/orion-asm/common/lifo"
	"github.com/orionrisc/orion-asm/opcode"
)

// flowAnalyzer analyzes control flow over the encoded words.
type flowAnalyzer struct{}

// NewFlowAnalyzer initializes an analyzer for assembled Orion programs.
func NewFlowAnalyzer() Analyzer {
	return &flowAnalyzer{}
}

// Analyze scans the assembled image for control-flow issues.
func (a *flowAnalyzer) Analyze(result *assembler.Result) ([]*Issue, error) {
	if result == nil || !result.Success {
		return nil, fmt.Errorf("program did not assemble cleanly")
	}
	if len(result.Instructions) == 0 {
		return nil, nil
	}

	graph := BuildCallGraph(result)
	issues := a.checkTargets(result, graph)
	issues = append(issues, a.checkReachability(result, graph)...)
	return issues, nil
}

// TraceStack reports the chain of callers from the named segment back
// to the program entry.
func (a *flowAnalyzer) TraceStack(result *assembler.Result, label string) (*IssueSource, error) {
	if result == nil || !result.Success {
		return nil, fmt.Errorf("program did not assemble cleanly")
	}
	graph := BuildCallGraph(result)
	segment := graph.Segment(label)
	if segment == nil {
		return nil, fmt.Errorf("no segment named %q", label)
	}

	seen := make(map[*Segment]bool)
	var visit func(segment *Segment) *IssueSource
	visit = func(segment *Segment) *IssueSource {
		if seen[segment] {
			return nil
		}
		seen[segment] = true

		source := &IssueSource{Address: segment.Address, Segment: segment.Label}
		for _, parent := range graph.ParentsOf(segment) {
			if caller := visit(parent); caller != nil {
				source.AddCallStack(caller)
				break
			}
		}
		return source
	}
	return visit(segment), nil
}

// checkTargets flags every branch whose target address holds no
// instruction.
func (a *flowAnalyzer) checkTargets(result *assembler.Result, graph *CallGraph) []*Issue {
	var issues []*Issue
	for _, ins := range result.Instructions {
		if !transfersControl(ins.Word) {
			continue
		}
		target := branchTarget(ins.Word)
		if graph.SegmentAt(target) != nil {
			continue
		}
		issues = append(issues, &Issue{
			Severity: IssueSeverityCritical,
			Message:  fmt.Sprintf("branch target 0x%04X is not an instruction", target),
			Source:   a.sourceAt(graph, ins.Address),
		})
	}
	return issues
}

// checkReachability walks every static execution path from the entry
// word and reports instruction runs no path reaches, plus paths that
// can fall off the end of the image.
func (a *flowAnalyzer) checkReachability(result *assembler.Result, graph *CallGraph) []*Issue {
	index := make(map[uint32]int, len(result.Instructions))
	for i, ins := range result.Instructions {
		index[ins.Address] = i
	}

	visited := make([]bool, len(result.Instructions))
	var issues []*Issue

	var work lifo.Stack[int]
	work.Push(0)
	for !work.IsEmpty() {
		i, _ := work.Pop()
		if visited[i] {
			continue
		}
		visited[i] = true
		ins := result.Instructions[i]
		op := uint8(ins.Word >> 28)

		if transfersControl(ins.Word) {
			if target, ok := index[branchTarget(ins.Word)]; ok {
				work.Push(target)
			}
		}

		// JUMP never falls through; RET and HALT end the path.
		if op == opcode.JUMP || op == opcode.RET || op == opcode.HALT {
			continue
		}
		if i+1 < len(result.Instructions) {
			work.Push(i + 1)
		} else {
			issues = append(issues, &Issue{
				Severity: IssueSeverityWarning,
				Message:  "control flow can run off the end of the image",
				Source:   a.sourceAt(graph, ins.Address),
			})
		}
	}

	for i := 0; i < len(visited); {
		if visited[i] {
			i++
			continue
		}
		run := 0
		start := result.Instructions[i].Address
		for i < len(visited) && !visited[i] {
			run++
			i++
		}
		issues = append(issues, &Issue{
			Severity: IssueSeverityWarning,
			Message:  fmt.Sprintf("unreachable code (%d words)", run),
			Source:   a.sourceAt(graph, start),
		})
	}
	return issues
}

func (a *flowAnalyzer) sourceAt(graph *CallGraph, address uint32) *IssueSource {
	source := &IssueSource{Address: address}
	if seg := graph.SegmentAt(address); seg != nil {
		source.Segment = seg.Label
	}
	return source
}
