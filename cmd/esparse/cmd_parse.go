package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/esparse/format"
	"github.com/example/esparse/parser"
	"github.com/example/esparse/source"
	"github.com/example/esparse/visitor"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a JavaScript file and dump its event trace and diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			p := parser.New(data)
			spy := visitor.NewSpy()
			p.ParseAndVisitModule(spy)

			switch outputFormat {
			case "json":
				if err := format.NewEventJSONEncoder(os.Stdout, spy.Records).Encode(); err != nil {
					return fmt.Errorf("encode events: %w", err)
				}
				fmt.Println()
			case "text":
				printEventsAsText(spy.Records)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			diags := p.Errors()
			if len(diags) == 0 {
				return nil
			}

			var locPtr = p.Locator()
			if !includePositions {
				locPtr = nil
			}
			if outputFormat == "json" {
				if err := format.NewDiagnosticJSONEncoder(os.Stdout, diags, locPtr).Encode(); err != nil {
					return fmt.Errorf("encode diagnostics: %w", err)
				}
				fmt.Println()
			} else {
				printDiagnosticsAsText(diags, locPtr)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, text)")
	cmd.Flags().BoolVar(&includePositions, "positions", true, "translate byte ranges to line/column positions")

	return cmd
}

func printEventsAsText(records []visitor.Record) {
	for _, r := range records {
		switch {
		case r.Name != "" && r.Event == visitor.EventVariableDeclaration:
			fmt.Printf("%s %s (%s)\n", r.Event, r.Name, r.Kind)
		case r.Name != "":
			fmt.Printf("%s %s\n", r.Event, r.Name)
		default:
			fmt.Println(r.Event)
		}
	}
}

func printDiagnosticsAsText(diags []source.Diagnostic, loc *source.Locator) {
	for _, d := range diags {
		if loc != nil {
			span := loc.Span(d.Range)
			fmt.Printf("%s:%s: %s\n", span.Begin, span.End, d.Kind)
			continue
		}
		fmt.Printf("%s: %s\n", d.Range, d.Kind)
	}
}
