package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"emblem/internal/driver"
	"emblem/internal/logging"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Check documents for syntax errors",
	Long:  `Check parses every given file and every *.em file under the given directories in parallel and reports diagnostics`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().String("diagnostics", "pretty", "diagnostics format (pretty|short|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	if s.opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	rawUI, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(rawUI)
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

	files, err := driver.CollectFiles(args)
	if err != nil {
		return err
	}
	s.logger.Debug("check", logging.FieldFiles, len(files))

	var batch *driver.Batch
	if !s.quiet && format != diagFormatJSON && len(files) > 1 && shouldUseTUI(mode, cmd.OutOrStdout()) {
		batch, err = runCheckWithUI(s, "checking", files, cmd.OutOrStdout())
	} else {
		batch, err = driver.ParseFiles(s.ctx, files, s.opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	bag := batch.Diagnostics()
	if err := s.printDiagnostics(cmd.ErrOrStderr(), bag, batch.FileSet, format); err != nil {
		return err
	}

	if !s.quiet && format != diagFormatJSON {
		errs, warns := countSeverities(bag)
		cached := 0
		for i := range batch.Files {
			if batch.Files[i].Cached {
				cached++
			}
		}
		line := fmt.Sprintf("checked %s: %s, %s", plural(len(batch.Files), "file"), plural(errs, "error"), plural(warns, "warning"))
		if cached > 0 {
			line += fmt.Sprintf(" (%d cached)", cached)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), line)
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), batch.Timer)
	}
	if batch.Failed() {
		return errReported
	}
	return nil
}
