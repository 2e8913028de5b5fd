package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"emblem/internal/diagfmt"
	"emblem/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.em|->",
	Short: "Parse an emblem document and print its syntax tree",
	Long:  `Parse reads one document (or stdin when the path is "-"), reports diagnostics on stderr and prints the syntax tree on stdout`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("ast", "tree", "tree output format (tree|debug|json|yaml|none)")
	parseCmd.Flags().String("diagnostics", "pretty", "diagnostics format (pretty|short|json)")
	parseCmd.Flags().Bool("recover", false, "keep parsing after an error")
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	astFormat, err := cmd.Flags().GetString("ast")
	if err != nil {
		return fmt.Errorf("failed to get ast flag: %w", err)
	}
	switch astFormat {
	case "tree", "debug", "json", "yaml", "none":
	default:
		return fmt.Errorf("unknown --ast format %q (expected tree|debug|json|yaml|none)", astFormat)
	}
	rawFormat, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	format, err := readDiagFormat(rawFormat)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("recover") {
		if s.opts.Recover, err = cmd.Flags().GetBool("recover"); err != nil {
			return fmt.Errorf("failed to get recover flag: %w", err)
		}
	}

	var result *driver.ParseResult
	if args[0] == "-" {
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		result, err = driver.ParseSource(s.ctx, "<stdin>", content, s.opts)
	} else {
		result, err = driver.Parse(s.ctx, args[0], s.opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if err := s.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, format); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch astFormat {
	case "tree":
		err = diagfmt.FormatASTPretty(out, result.Builder, result.FileID, result.FileSet)
	case "debug":
		_, err = fmt.Fprintln(out, diagfmt.FormatASTDebug(result.Builder, result.FileID))
	case "json":
		err = diagfmt.FormatASTJSON(out, result.Builder, result.FileID)
	case "yaml":
		err = diagfmt.FormatASTYAML(out, result.Builder, result.FileID)
	}
	if err != nil {
		return err
	}

	if s.timings {
		printTimings(cmd.ErrOrStderr(), result.Timer)
	}
	if result.Failed() {
		return errReported
	}
	return nil
}
