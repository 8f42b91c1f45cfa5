package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/esparse/parser"
	"github.com/example/esparse/visitor"
)

func newScanCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Scan a directory for .js files and report syntax diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0], timeout)
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "timeout per file")

	return cmd
}

func runScan(root string, timeout time.Duration) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}

	var files []string
	if info.IsDir() {
		files, err = findJSFiles(root)
		if err != nil {
			return err
		}
	} else {
		files = []string{root}
	}

	fmt.Printf("Found %d files to scan\n", len(files))

	var diagCount, errCount int
	for i, file := range files {
		fmt.Printf("[%d/%d] ", i+1, len(files))
		n, scanErr := scanFile(file, timeout)
		diagCount += n
		if scanErr != nil {
			errCount++
		}
	}

	fmt.Printf("\n=== SCAN COMPLETE ===\n")
	fmt.Printf("Files scanned: %d\n", len(files))
	fmt.Printf("Diagnostics: %d\n", diagCount)
	fmt.Printf("Failures: %d\n", errCount)
	return nil
}

func findJSFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ".js" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// scanFile parses one file on a timeout, mirroring the per-file deadline
// the same RunE call enforces on every other file in the batch.
func scanFile(path string, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	var diags int
	var parseErr error

	go func() {
		defer close(done)
		data, err := os.ReadFile(path)
		if err != nil {
			parseErr = err
			return
		}
		p := parser.New(data)
		p.ParseAndVisitModule(visitor.NewSpy())
		diags = len(p.Errors())
	}()

	select {
	case <-done:
		if parseErr != nil {
			fmt.Printf("[ERROR] %s: %v\n", path, parseErr)
			return 0, parseErr
		}
		fmt.Printf("[OK] %s (%d diagnostics)\n", path, diags)
		return diags, nil
	case <-ctx.Done():
		fmt.Printf("[TIMEOUT] %s\n", path)
		return 0, ctx.Err()
	}
}
