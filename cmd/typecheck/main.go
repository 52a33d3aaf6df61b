// Command typecheck exercises the public Checker API (spec.md §6.1) end
// to end: it reads a JSON AST fixture (internal/ast's stand-in for the
// out-of-scope parser) and reports every diagnostic the core records.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/checker"
	"github.com/typeforge/checker/internal/checkercfg"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a YAML config file")
		versionFlag = flag.Bool("version", false, "print version information")
		helpFlag    = flag.Bool("help", false, "show help")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("typecheck (dev)")
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg := checkercfg.Default()
	if *configPath != "" {
		loaded, err := checkercfg.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			os.Exit(1)
		}
		cfg = loaded
	}
	color.NoColor = !cfg.Color

	switch cmd := flag.Arg(0); cmd {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, red("check requires a path to a JSON AST fixture"))
			os.Exit(1)
		}
		os.Exit(runCheck(flag.Arg(1), cfg))
	default:
		fmt.Fprintf(os.Stderr, "%s %s\n", red("unknown command:"), cmd)
		printHelp()
		os.Exit(1)
	}
}

func runCheck(path string, cfg *checkercfg.Config) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(fmt.Sprintf("reading %s: %s", path, err)))
		return 1
	}

	prog, err := ast.DecodeProgram(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(fmt.Sprintf("decoding %s: %s", path, err)))
		return 1
	}

	var opts []checker.Option
	if cfg.TagSessions {
		opts = append(opts, checker.WithSessionIDs(true))
	}
	c := checker.New(opts...)
	c.CheckProgram(prog)

	if !c.HasErrors() {
		fmt.Println(green(bold("ok")) + ": no type errors")
		if id := c.SessionID(); id != "" {
			fmt.Printf("session: %s\n", id)
		}
		return 0
	}

	for _, msg := range c.Errors() {
		fmt.Println(yellow("error:"), msg)
	}
	return 1
}

func printHelp() {
	fmt.Println(`typecheck - run the core type checker over a JSON AST fixture

Usage:
  typecheck [--config FILE] check <fixture.json>
  typecheck --version
  typecheck --help`)
}
