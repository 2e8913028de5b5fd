package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"emblem/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] <file.em>",
	Short: "Parse a document and hand it to the typesetter",
	Long:  `Build parses one document and, if it is free of errors, passes the tree to the typesetter. The bundled typesetter only counts nodes and dispatchable commands`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("diagnostics", "pretty", "diagnostics format (pretty|short|json)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	rawFormat, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	format, err := readDiagFormat(rawFormat)
	if err != nil {
		return err
	}

	ts := &driver.CountingTypesetter{}
	result, err := driver.Build(s.ctx, args[0], s.opts, ts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if err := s.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, format); err != nil {
		return err
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), result.Timer)
	}
	if !result.Typeset {
		return errReported
	}
	if !s.quiet {
		printStats(cmd, ts.Stats)
	}
	return nil
}

func printStats(cmd *cobra.Command, st driver.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s, %s, %s\n",
		plural(st.Pars, "paragraph"), plural(st.Nodes, "node"), plural(st.Dispatchable(), "call"))
	names := make([]string, 0, len(st.Calls))
	for name := range st.Calls {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(out, "  .%-12s %d\n", name, st.Calls[name])
	}
}
