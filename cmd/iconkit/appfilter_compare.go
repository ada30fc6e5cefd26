package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iconforge/iconkit/internal/appfilter"
	"github.com/iconforge/iconkit/internal/common/config"
	"github.com/iconforge/iconkit/internal/common/logger"
	"github.com/spf13/cobra"
)

var (
	compareMatcher string
	compareSource  string
)

var compareCmd = &cobra.Command{
	Use:   "compare [local-appfilter] [remote-url]",
	Short: "Preview what a merge from an upstream appfilter would add",
	Long: `Compare the local appfilter.xml against an upstream one without
modifying anything. Shows the entries a merge would add, and the remote
entries that have no confident local match and would need a new icon.

Examples:
  iconkit appfilter compare newicons/appfilter.xml https://raw.githubusercontent.com/Arcticons-Team/Arcticons/refs/heads/main/newicons/appfilter.xml
  iconkit appfilter compare --source arcticons`,
	Args: cobra.MaximumNArgs(2),
	Run:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareMatcher, "matcher", "", "Matching policy: drawable (default) or name")
	compareCmd.Flags().StringVar(&compareSource, "source", "", "Fetch the remote from a named source in .iconkit/sources.toml")

	appfilterCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	in, err := resolveInputs(cfg, args, compareSource, compareMatcher)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	local, err := appfilter.LoadDocument(in.localPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	data, err := appfilter.Fetch(context.Background(), in.remote, httpClient(cfg), in.headers)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	remote, err := appfilter.ParseDocument(data)
	if err != nil {
		logger.Error("remote %s: %v", in.remote, err)
		os.Exit(1)
	}

	matcher, conflicts, err := appfilter.NewMatcher(in.matcher, local, remote)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	for _, conflict := range conflicts {
		logger.Warn("%s", conflict)
	}

	report := appfilter.Compare(local, remote, matcher)
	fmt.Print(appfilter.FormatReport(report))
}
