package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/orionrisc/orion-asm/assembler"
	"github.com/orionrisc/orion-asm/symtab"
	"github.com/urfave/cli/v2"
)

func CreateSymbolsCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "symbols",
		Usage:       "Prints the symbol table of an assembly source file",
		Description: "Runs pass 1 over the source and prints every label and equate with its resolved value",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			BaseAddressFlag,
		},
	}
}

var SymbolsCommand = CreateSymbolsCommand(Symbols)

func Symbols(ctx *cli.Context) error {
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	base, err := parseBase(ctx.String(BaseAddressFlag.Name))
	if err != nil {
		return err
	}
	source, err := readSource(ctx.Args().First())
	if err != nil {
		return err
	}

	result := assembler.New(prof).Assemble(source, base)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tVALUE")
	for _, sym := range sortedSymbols(result) {
		fmt.Fprintf(w, "%s\t%s\t0x%X\n", sym.Name, sym.Kind, sym.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("assembly failed with %d errors", len(result.Errors))
	}
	return nil
}

func sortedSymbols(result *assembler.Result) []symtab.Entry {
	out := make([]symtab.Entry, len(result.Symbols))
	copy(out, result.Symbols)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
