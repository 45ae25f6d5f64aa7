package assembler

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// TestCorpus assembles each testdata archive and compares the output
// against the expected address/word listing. An archive holds a
// "source.asm" file and an "expected" file with one "ADDRESS WORD" pair
// per line, both hex.
func TestCorpus(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txt"))
	require.NoError(t, err)
	require.NotEmpty(t, archives, "no corpus archives in testdata")

	for _, path := range archives {
		name := strings.TrimSuffix(filepath.Base(path), ".txt")
		t.Run(name, func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)

			var source, expected string
			for _, file := range archive.Files {
				switch file.Name {
				case "source.asm":
					source = string(file.Data)
				case "expected":
					expected = string(file.Data)
				}
			}
			require.NotEmpty(t, source, "archive has no source.asm")
			require.NotEmpty(t, expected, "archive has no expected listing")

			result := New(nil).Assemble(source, 0x1000)
			require.True(t, result.Success, "errors: %v", result.Errors)

			var got strings.Builder
			for _, ins := range result.Instructions {
				fmt.Fprintf(&got, "%04X %08X\n", ins.Address, ins.Word)
			}
			assert.Equal(t, strings.TrimSpace(expected), strings.TrimSpace(got.String()))
		})
	}
}
