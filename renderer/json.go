package renderer

import (
	"encoding/json"
	"io"

	"github.com/orionrisc/orion-asm/assembler"
	"github.com/orionrisc/orion-asm/codegen"
	"github.com/orionrisc/orion-asm/symtab"
)

// JSONRenderer renders the result in JSON format for machine consumers.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

// jsonReport is the wire shape of a rendered result. Diagnostics flatten
// to strings so consumers need no knowledge of the error taxonomy.
type jsonReport struct {
	Success      bool                 `json:"success"`
	Instructions []jsonInstruction    `json:"instructions"`
	Symbols      []jsonSymbol         `json:"symbols,omitempty"`
	Errors       []string             `json:"errors,omitempty"`
	Warnings     []string             `json:"warnings,omitempty"`
	Statistics   assembler.Statistics `json:"statistics"`
}

type jsonInstruction struct {
	Address uint32 `json:"address"`
	Word    uint32 `json:"word"`
	Size    uint32 `json:"size"`
}

type jsonSymbol struct {
	Name  string `json:"name"`
	Kind  uint8  `json:"kind"`
	Value uint32 `json:"value"`
}

func (r *JSONRenderer) Render(result *assembler.Result, output io.Writer) error {
	report := jsonReport{
		Success:      result.Success,
		Instructions: make([]jsonInstruction, 0, len(result.Instructions)),
		Statistics:   result.Statistics,
	}
	for _, ins := range result.Instructions {
		report.Instructions = append(report.Instructions, encodeInstruction(ins))
	}
	for _, sym := range result.Symbols {
		report.Symbols = append(report.Symbols, encodeSymbol(sym))
	}
	for _, err := range result.Errors {
		report.Errors = append(report.Errors, err.Error())
	}
	for _, warn := range result.Warnings {
		report.Warnings = append(report.Warnings, warn.Error())
	}
	return json.NewEncoder(output).Encode(report)
}

func encodeInstruction(ins codegen.EncodedInstruction) jsonInstruction {
	return jsonInstruction{Address: ins.Address, Word: ins.Word, Size: ins.Size}
}

func encodeSymbol(sym symtab.Entry) jsonSymbol {
	return jsonSymbol{Name: sym.Name, Kind: uint8(sym.Kind), Value: sym.Value}
}

func (r *JSONRenderer) Format() string {
	return "json"
}
