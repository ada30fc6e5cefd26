package main

import (
	"fmt"
	"os"

	"github.com/iconforge/iconkit/internal/common/logger"
	"github.com/iconforge/iconkit/internal/common/output"
	"github.com/iconforge/iconkit/internal/common/version"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:     "iconkit",
	Short:   "Icon pack maintenance tools",
	Long:    `A collection of tools for maintaining Android icon packs, including syncing appfilter.xml files from upstream icon packs.`,
	Version: version.Short(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logging based on flags
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor {
			output.NoColor()
		}
	},
}

var appfilterCmd = &cobra.Command{
	Use:   "appfilter",
	Short: "Manage appfilter.xml files",
	Long:  `Commands for working with appfilter.xml files: merging new entries from upstream icon packs, previewing what a merge would add, and validating the file.`,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.SetVersionTemplate(version.Info() + "\n")

	rootCmd.AddCommand(appfilterCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
