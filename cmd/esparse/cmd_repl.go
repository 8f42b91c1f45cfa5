package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/esparse/parser"
	"github.com/example/esparse/visitor"
)

const (
	replBanner     = "esparse REPL — Ctrl+D exits. Type :help for commands."
	replPrompt     = "> "
	replContPrompt = "... "
	replHelp       = `
REPL commands:
  :help     Show this help
  :quit     Exit the REPL
`
)

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read JavaScript statements interactively and print their event trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			runREPL()
			return nil
		},
	}
}

// runREPL accumulates input line by line until a blank line ends the
// current statement, then parses and visits it with a fresh visitor.Spy,
// printing the resulting event trace. Each statement gets its own parser;
// there is no shared scope or symbol table across a session.
func runREPL() {
	fmt.Println(replBanner)

	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder
	prompt := replPrompt

	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()

		if buf.Len() == 0 {
			switch strings.TrimSpace(line) {
			case ":quit":
				return
			case ":help":
				fmt.Print(replHelp)
				continue
			case "":
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteByte('\n')

		if strings.TrimSpace(line) == "" {
			evalREPLStatement(buf.String())
			buf.Reset()
			prompt = replPrompt
			continue
		}

		prompt = replContPrompt
	}
}

func evalREPLStatement(src string) {
	p := parser.New([]byte(src))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	printEventsAsText(spy.Records)
	for _, d := range p.Errors() {
		fmt.Printf("%s: %s\n", d.Range, d.Kind)
	}
}
