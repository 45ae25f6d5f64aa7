package analysis

import (
	"testing"

	"github.com/orionrisc/orion-asm/assembler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanProgram(t *testing.T) {
	result := assemble(t,
		"start:",
		"LOAD R0, 10",
		"loop:",
		"SUB R0, R1",
		"JZ R0, done",
		"JUMP loop",
		"done:",
		"HALT",
	)

	issues, err := NewFlowAnalyzer().Analyze(result)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEmptyProgram(t *testing.T) {
	result := assemble(t, "")
	issues, err := NewFlowAnalyzer().Analyze(result)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestUnreachableRun(t *testing.T) {
	result := assemble(t,
		"JUMP end",
		"ADD R0, R1",
		"SUB R0, R1",
		"end:",
		"HALT",
	)

	issues, err := NewFlowAnalyzer().Analyze(result)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueSeverityWarning, issues[0].Severity)
	assert.Equal(t, "unreachable code (2 words)", issues[0].Message)
	assert.Equal(t, uint32(0x1004), issues[0].Source.Address)
}

func TestWildBranchIsCritical(t *testing.T) {
	result := assemble(t,
		"JUMP 0x4000",
		"HALT",
	)

	issues, err := NewFlowAnalyzer().Analyze(result)
	require.NoError(t, err)

	var critical []*Issue
	for _, issue := range issues {
		if issue.Severity == IssueSeverityCritical {
			critical = append(critical, issue)
		}
	}
	require.Len(t, critical, 1)
	assert.Contains(t, critical[0].Message, "0x4000")
	assert.Equal(t, uint32(0x1000), critical[0].Source.Address)
}

func TestCallFallsThroughAfterReturn(t *testing.T) {
	result := assemble(t,
		"main:",
		"CALL helper",
		"HALT",
		"helper:",
		"RET",
	)

	issues, err := NewFlowAnalyzer().Analyze(result)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestRunsOffTheEnd(t *testing.T) {
	result := assemble(t,
		"LOAD R0, 1",
		"ADD R0, R1",
	)

	issues, err := NewFlowAnalyzer().Analyze(result)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueSeverityWarning, issues[0].Severity)
	assert.Equal(t, "control flow can run off the end of the image", issues[0].Message)
	assert.Equal(t, uint32(0x1004), issues[0].Source.Address)
}

func TestAnalyzeRejectsFailedAssembly(t *testing.T) {
	result := assembler.New(nil).Assemble("JUMP nowhere", 0x1000)
	require.False(t, result.Success)

	_, err := NewFlowAnalyzer().Analyze(result)
	assert.Error(t, err)
}

func TestTraceStack(t *testing.T) {
	result := assemble(t,
		"main:",
		"CALL middle",
		"HALT",
		"middle:",
		"CALL leaf",
		"RET",
		"leaf:",
		"RET",
	)

	trace, err := NewFlowAnalyzer().TraceStack(result, "leaf")
	require.NoError(t, err)
	require.NotNil(t, trace)
	assert.Equal(t, "leaf", trace.Segment)
	require.NotNil(t, trace.CallStack)
	assert.Equal(t, "middle", trace.CallStack.Segment)
	require.NotNil(t, trace.CallStack.CallStack)
	assert.Equal(t, "main", trace.CallStack.CallStack.Segment)
}

func TestTraceStackUnknownLabel(t *testing.T) {
	result := assemble(t, "HALT")
	_, err := NewFlowAnalyzer().TraceStack(result, "ghost")
	assert.Error(t, err)
}
