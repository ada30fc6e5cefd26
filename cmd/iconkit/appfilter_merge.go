package main

import (
	"context"
	"os"

	"github.com/iconforge/iconkit/internal/appfilter"
	"github.com/iconforge/iconkit/internal/common/config"
	"github.com/iconforge/iconkit/internal/common/logger"
	"github.com/iconforge/iconkit/internal/common/output"
	"github.com/spf13/cobra"
)

var (
	mergeDryRun  bool
	mergeOutput  string
	mergeMatcher string
	mergeSource  string
)

var mergeCmd = &cobra.Command{
	Use:   "merge [local-appfilter] [remote-url]",
	Short: "Merge new entries from an upstream appfilter",
	Long: `Merge entries that appear in an upstream appfilter.xml but not in the
local one. A new entry is only added when it can be confidently mapped to an
icon that is already drawn locally; everything else is skipped.

The local file is rewritten in place, preserving formatting and comments, so
the resulting diff contains only the added lines. With no changes the file
is left byte-identical.

Examples:
  iconkit appfilter merge newicons/appfilter.xml https://raw.githubusercontent.com/Arcticons-Team/Arcticons/refs/heads/main/newicons/appfilter.xml
  iconkit appfilter merge newicons/appfilter.xml --source arcticons
  iconkit appfilter merge --dry-run                Use paths from the config
  iconkit appfilter merge --matcher name           Match by normalized app name`,
	Args: cobra.MaximumNArgs(2),
	Run:  runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "Compute the merge without writing the file")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Write the merged file to this path instead of in place")
	mergeCmd.Flags().StringVar(&mergeMatcher, "matcher", "", "Matching policy: drawable (default) or name")
	mergeCmd.Flags().StringVar(&mergeSource, "source", "", "Fetch the remote from a named source in .iconkit/sources.toml")

	appfilterCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	in, err := resolveInputs(cfg, args, mergeSource, mergeMatcher)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	logger.Debug("merging %s into %s", in.remote, in.localPath)

	res, err := appfilter.Run(context.Background(), in.localPath, in.remote, appfilter.Options{
		Matcher: in.matcher,
		Output:  mergeOutput,
		DryRun:  mergeDryRun,
		Headers: in.headers,
		Client:  httpClient(cfg),
	})
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	for _, conflict := range res.Conflicts {
		logger.Warn("%s", conflict)
	}
	for _, e := range res.Skipped {
		logger.Debug("skipped %s (no local icon for %q)", e.Component, e.Drawable)
	}

	if len(res.Added) == 0 {
		logger.Info("Nothing to merge, local appfilter is up to date")
		return
	}

	for _, e := range res.Added {
		logger.Info("%s %s -> %s", output.FormatStatus("Added"), e.Component, output.FormatDrawable(e.Drawable))
	}

	if mergeDryRun {
		logger.Info("Dry run: %d entries would be added, %d skipped", len(res.Added), len(res.Skipped))
		return
	}
	output.PrintSuccess("Added %d entries (%d skipped)", len(res.Added), len(res.Skipped))
}
