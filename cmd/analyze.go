package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/orionrisc/orion-asm/analysis"
	"github.com/orionrisc/orion-asm/assembler"
	"github.com/urfave/cli/v2"
)

var TraceFlag = &cli.StringFlag{
	Name:     "trace",
	Usage:    "label to print the caller chain for instead of running the checks",
	Required: false,
}

func CreateAnalyzeCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "analyze",
		Usage:       "Analyzes an assembled program for control-flow issues",
		Description: "Assembles the source file and reports wild branches, unreachable code and paths that run off the image",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			BaseAddressFlag,
			FormatFlag,
			TraceFlag,
		},
	}
}

var AnalyzeCommand = CreateAnalyzeCommand(Analyze)

func Analyze(ctx *cli.Context) error {
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
	if !result.Success {
		for _, asmErr := range result.Errors {
			fmt.Fprintln(os.Stderr, asmErr)
		}
		return fmt.Errorf("assembly failed with %d errors", len(result.Errors))
	}

	analyzer := analysis.NewFlowAnalyzer()

	if label := ctx.String(TraceFlag.Name); label != "" {
		trace, err := analyzer.TraceStack(result, label)
		if err != nil {
			return err
		}
		for source := trace; source != nil; source = source.CallStack {
			fmt.Printf("0x%04X %s\n", source.Address, segmentName(source.Segment))
		}
		return nil
	}

	issues, err := analyzer.Analyze(result)
	if err != nil {
		return err
	}
	return writeIssues(issues, ctx.String(FormatFlag.Name))
}

func writeIssues(issues []*analysis.Issue, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if issues == nil {
			issues = []*analysis.Issue{}
		}
		return encoder.Encode(issues)
	case "", "text":
		if len(issues) == 0 {
			fmt.Println("no issues found")
			return nil
		}
		for _, issue := range issues {
			fmt.Printf("%-8s 0x%04X %s: %s\n",
				issue.Severity, issue.Source.Address, segmentName(issue.Source.Segment), issue.Message)
		}
		return nil
	default:
		return fmt.Errorf("invalid format: %s", format)
	}
}

func segmentName(label string) string {
	if label == "" {
		return "(entry)"
	}
	return label
}
