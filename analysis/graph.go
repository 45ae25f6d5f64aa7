package analysis

import (
	"sort"

	"github.com/orionrisc/orion-asm/assembler"
	"github.com/orionrisc/orion-asm/codegen"
	"github.com/orionrisc/orion-asm/opcode"
	"github.com/orionrisc/orion-asm/symtab"
)

// Segment is a label-delimited run of instructions. Code before the
// first label forms an unnamed entry segment.
type Segment struct {
	Label        string
	Address      uint32
	Instructions []codegen.EncodedInstruction
}

// CallGraph records which segments transfer control into which. Edges
// come from the encoded words, so elided or relocated programs analyze
// the same as hand-addressed ones.
type CallGraph struct {
	segments  []*Segment
	parents   map[*Segment][]*Segment
	byLabel   map[string]*Segment
	byAddress map[uint32]*Segment // instruction address -> enclosing segment
}

// BuildCallGraph partitions the assembled instructions into segments
// and wires an edge for every JUMP, JZ and CALL between them.
func BuildCallGraph(result *assembler.Result) *CallGraph {
	graph := &CallGraph{
		parents:   make(map[*Segment][]*Segment),
		byLabel:   make(map[string]*Segment),
		byAddress: make(map[uint32]*Segment),
	}

	type boundary struct {
		address uint32
		label   string
	}
	var boundaries []boundary
	for _, sym := range result.Symbols {
		if sym.Kind == symtab.KindLabel {
			boundaries = append(boundaries, boundary{sym.Value, sym.Name})
		}
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].address < boundaries[j].address })

	startsAt := make(map[uint32][]string)
	for _, b := range boundaries {
		startsAt[b.address] = append(startsAt[b.address], b.label)
	}

	var current *Segment
	for _, ins := range result.Instructions {
		if labels, ok := startsAt[ins.Address]; ok {
			current = &Segment{Label: labels[0], Address: ins.Address}
			graph.segments = append(graph.segments, current)
			// Aliases defined at the same address share the segment.
			for _, label := range labels {
				graph.byLabel[label] = current
			}
		} else if current == nil {
			current = &Segment{Address: ins.Address}
			graph.segments = append(graph.segments, current)
		}
		current.Instructions = append(current.Instructions, ins)
		graph.byAddress[ins.Address] = current
	}

	for _, seg := range graph.segments {
		for _, ins := range seg.Instructions {
			if !transfersControl(ins.Word) {
				continue
			}
			target, ok := graph.byAddress[branchTarget(ins.Word)]
			if !ok || target == seg {
				continue
			}
			graph.addParent(target, seg)
		}
	}
	return graph
}

// Segments returns the segments in image order.
func (g *CallGraph) Segments() []*Segment {
	return g.segments
}

// Segment returns the segment a label names, or nil.
func (g *CallGraph) Segment(label string) *Segment {
	return g.byLabel[label]
}

// SegmentAt returns the segment containing the instruction at the
// address, or nil when no instruction lives there.
func (g *CallGraph) SegmentAt(address uint32) *Segment {
	return g.byAddress[address]
}

// ParentsOf returns the segments that transfer control into the given
// segment.
func (g *CallGraph) ParentsOf(segment *Segment) []*Segment {
	return g.parents[segment]
}

func (g *CallGraph) addParent(segment, parent *Segment) {
	for _, existing := range g.parents[segment] {
		if existing == parent {
			return
		}
	}
	g.parents[segment] = append(g.parents[segment], parent)
}

func transfersControl(word uint32) bool {
	switch uint8(word >> 28) {
	case opcode.JUMP, opcode.JZ, opcode.CALL:
		return true
	}
	return false
}

func branchTarget(word uint32) uint32 {
	return word & 0xFFFF
}
