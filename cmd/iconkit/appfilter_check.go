package main

import (
	"os"

	"github.com/iconforge/iconkit/internal/appfilter"
	"github.com/iconforge/iconkit/internal/common/config"
	"github.com/iconforge/iconkit/internal/common/logger"
	"github.com/iconforge/iconkit/internal/common/output"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [local-appfilter]",
	Short: "Validate an appfilter.xml file",
	Long: `Validate an appfilter.xml file: well-formed XML, component and
drawable attributes on every item, and no duplicate components.

Exits nonzero when the file has errors.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	appfilterCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	var path string
	if len(args) >= 1 {
		path = args[0]
	} else {
		cfg, err := config.Load()
		if err != nil {
			logger.Error("loading config: %v", err)
			os.Exit(1)
		}
		path, err = cfg.GetAppfilterPath()
		if err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
	}

	result, err := appfilter.CheckFile(path)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	for _, warning := range result.Warnings {
		output.PrintWarning("%s", warning)
	}

	if !result.Valid {
		for _, e := range result.Errors {
			output.PrintError("%s", e)
		}
		logger.Error("%s: %d items, %d errors", path, result.Items, len(result.Errors))
		os.Exit(1)
	}

	output.PrintSuccess("%s: %d items, no errors", path, result.Items)
}
