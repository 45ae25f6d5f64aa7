package main

import (
	"context"
	"log"
	"os"

	"github.com/orionrisc/orion-asm/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = os.Args[0]
	app.Usage = "Orion Two-Pass Assembler"
	app.Description = "Orion Two-Pass Assembler"
	app.Commands = []*cli.Command{
		cmd.AssembleCommand,
		cmd.SymbolsCommand,
		cmd.AnalyzeCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
