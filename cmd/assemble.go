// Package cmd defines all the commands for the cli
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/orionrisc/orion-asm/assembler"
	"github.com/orionrisc/orion-asm/profile"
	"github.com/orionrisc/orion-asm/renderer"
	"github.com/urfave/cli/v2"
)

var (
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to the machine profile config file. Default: built-in orion-128 profile",
		Required: false,
	}
	BaseAddressFlag = &cli.StringFlag{
		Name:     "base",
		Usage:    "Base address to assemble at, decimal or 0x-hex. Default: profile base address",
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:        "format",
		Usage:       "format of the output. Options: json, text",
		Required:    false,
		DefaultText: "text",
	}
	OutputPathFlag = &cli.PathFlag{
		Name:     "output",
		Usage:    "output file path for the listing/report. Default: stdout",
		Required: false,
	}
	BinaryPathFlag = &cli.PathFlag{
		Name:     "binary",
		Usage:    "file path to write the raw machine code image to",
		Required: false,
	}
	OptimizeFlag = &cli.BoolFlag{
		Name:     "optimize",
		Usage:    "enable the dead-NOP elision pass",
		Required: false,
		Value:    false,
	}
)

func CreateAssembleCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "assemble",
		Usage:       "Assembles an Orion assembly source file into machine code",
		Description: "Assembles an Orion assembly source file into machine code",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			BaseAddressFlag,
			FormatFlag,
			OutputPathFlag,
			BinaryPathFlag,
			OptimizeFlag,
		},
	}
}

var AssembleCommand = CreateAssembleCommand(Assemble)

func Assemble(ctx *cli.Context) error {
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool(OptimizeFlag.Name) {
		prof.ElideNOPs = true
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

	if binaryPath := ctx.Path(BinaryPathFlag.Name); binaryPath != "" {
		if !result.Success {
			return fmt.Errorf("assembly failed, refusing to write binary image")
		}
		if err := writeBinary(result, binaryPath, prof); err != nil {
			return fmt.Errorf("unable to write binary image: %w", err)
		}
	}

	if err := writeReport(result, ctx.String(FormatFlag.Name), ctx.Path(OutputPathFlag.Name), prof); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("assembly failed with %d errors", len(result.Errors))
	}
	return nil
}

func loadProfile(ctx *cli.Context) (*profile.MachineProfile, error) {
	path := ctx.Path(ProfileFlag.Name)
	if path == "" {
		return profile.Default(), nil
	}
	prof, err := profile.LoadProfile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return prof, nil
}

func parseBase(text string) (uint32, error) {
	if text == "" {
		return 0, nil
	}
	base, err := strconv.ParseUint(text, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid base address %q: %w", text, err)
	}
	return uint32(base), nil
}

func readSource(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no source file given")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("unable to determine absolute path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("error reading source: %w", err)
	}
	return string(data), nil
}

// writeBinary dumps the encoded words as a contiguous big-endian image
// starting at the first instruction's address. The image must fit inside
// the profile's memory.
func writeBinary(result *assembler.Result, path string, prof *profile.MachineProfile) error {
	if len(result.Instructions) == 0 {
		return os.WriteFile(path, nil, 0600)
	}
	start := result.Instructions[0].Address
	last := result.Instructions[len(result.Instructions)-1]
	if end := uint64(last.Address) + uint64(last.Size); end > uint64(prof.MemorySize) {
		return fmt.Errorf("image ends at 0x%X, beyond the %d bytes of %s memory",
			end, prof.MemorySize, prof.Machine)
	}
	image := make([]byte, last.Address+last.Size-start)
	for _, ins := range result.Instructions {
		off := ins.Address - start
		image[off] = byte(ins.Word >> 24)
		image[off+1] = byte(ins.Word >> 16)
		image[off+2] = byte(ins.Word >> 8)
		image[off+3] = byte(ins.Word)
	}
	return os.WriteFile(path, image, 0600)
}

// writeReport outputs the results in the specified format.
func writeReport(result *assembler.Result, format, outputPath string, prof *profile.MachineProfile) error {
	var output *os.File
	if outputPath == "" {
		output = os.Stdout
	} else {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return fmt.Errorf("unable to determine absolute path: %w", err)
		}
		output, err = os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("unable to open output file: %w", err)
		}
		defer func() {
			_ = output.Close()
		}()
	}

	var rendererInstance renderer.Renderer
	switch format {
	case "", "text":
		rendererInstance = renderer.NewTextRenderer(prof)
	case "json":
		rendererInstance = renderer.NewJSONRenderer()
	default:
		return fmt.Errorf("invalid format: %s", format)
	}

	return rendererInstance.Render(result, output)
}
