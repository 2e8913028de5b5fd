package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"emblem/internal/version"
)

// errReported means the failure has already been printed as diagnostics.
var errReported = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:               "emblem",
	Short:             "Emblem document compiler front end",
	Long:              `Emblem parses .em documents into a syntax tree and reports diagnostics`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: startProfiling,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off); defaults to emblem.toml")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = no limit)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("config", "", "path to emblem.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "do not read or write the parse cache")
	rootCmd.PersistentFlags().Bool("fatal-warnings", false, "treat warnings as errors")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
}

// main executes the root command and maps failures to exit status 1.
func main() {
	err := rootCmd.Execute()
	stopProfiling()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
