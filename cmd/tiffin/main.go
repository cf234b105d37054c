package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/desidelights/tiffin/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	verbose := flag.Bool("verbose", false, "debug-level diagnostics on stderr")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Verbose: *verbose,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
