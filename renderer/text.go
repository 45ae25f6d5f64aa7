package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/orionrisc/orion-asm/assembler"
	"github.com/orionrisc/orion-asm/disassembler"
	"github.com/orionrisc/orion-asm/profile"
)

// TextRenderer formats an assembly result as a human-readable listing:
// address, machine word and source statement per line, followed by the
// symbol table, diagnostics and run statistics.
type TextRenderer struct {
	profile *profile.MachineProfile
}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer(prof *profile.MachineProfile) Renderer {
	if prof == nil {
		prof = profile.Default()
	}
	return &TextRenderer{profile: prof}
}

func (r *TextRenderer) Render(result *assembler.Result, output io.Writer) error {
	var report strings.Builder

	report.WriteString(fmt.Sprintf("machine: %s\n", r.profile.Machine))
	if result.Success {
		report.WriteString("status: ok\n\n")
	} else {
		report.WriteString("status: failed\n\n")
	}

	// The parsed list and the encoded list line up unless the elision pass
	// dropped instructions; decode the word itself in that case.
	aligned := len(result.Parsed) == len(result.Instructions)
	for i, enc := range result.Instructions {
		source := disassembler.Disassemble(enc.Word)
		if aligned {
			source = result.Parsed[i].String()
		}
		report.WriteString(fmt.Sprintf("%08X  %08X  %s\n", enc.Address, enc.Word, source))
	}

	if len(result.Symbols) > 0 {
		report.WriteString("\nsymbols:\n")
		for _, sym := range result.Symbols {
			report.WriteString(fmt.Sprintf("  %-24s %-8s 0x%X\n", sym.Name, sym.Kind, sym.Value))
		}
	}

	if len(result.Errors) > 0 {
		report.WriteString("\nerrors:\n")
		for _, err := range result.Errors {
			report.WriteString("  " + err.Error() + "\n")
		}
	}
	if len(result.Warnings) > 0 {
		report.WriteString("\nwarnings:\n")
		for _, warn := range result.Warnings {
			report.WriteString("  " + warn.Error() + "\n")
		}
	}

	stats := result.Statistics
	report.WriteString(fmt.Sprintf(
		"\n%d lines, %d instructions, %d symbols, %d bytes, %d relocations, %d optimizations in %s\n",
		stats.SourceLines, stats.InstructionsGenerated, stats.SymbolsFound,
		stats.BytesGenerated, stats.RelocationsApplied, stats.OptimizationsApplied,
		stats.TotalTime.Round(time.Microsecond)))

	_, err := io.WriteString(output, report.String())
	return err
}

func (r *TextRenderer) Format() string {
	return "text"
}
