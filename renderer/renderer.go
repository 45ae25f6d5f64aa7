// Package renderer provides a way to render assembly results in
// different formats.
package renderer

import (
	"io"

	"github.com/orionrisc/orion-asm/assembler"
)

// Renderer defines the interface for rendering an assembly result.
type Renderer interface {
	// Render writes the result in the renderer's format.
	Render(result *assembler.Result, output io.Writer) error

	// Format returns the name of the output format (e.g. "json", "text").
	Format() string
}
