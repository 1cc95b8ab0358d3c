package main

import (
	"github.com/spf13/cobra"

	"github.com/noxpardalis/gitch/internal/gitrepo"
	"github.com/noxpardalis/gitch/internal/report"
)

func createExtractCommand() *cobra.Command {
	var (
		withDiff      bool
		algorithmName string
		startCommit   string
		endCommit     string
		startStamp    string
		endStamp      string
	)

	cmd := &cobra.Command{
		Use:   "extract [repository]",
		Short: "Extract commit metadata from the repository as JSON",
		Long: "Extract walks the repository history, newest first, and prints " +
			"each commit's metadata as JSON, optionally with its diff.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}

			window := gitrepo.Window{StartID: startCommit, EndID: endCommit}
			if startStamp != "" {
				t, err := gitrepo.ParseStartTime(startStamp)
				if err != nil {
					return err
				}
				window.StartTime = &t
			}
			if endStamp != "" {
				t, err := gitrepo.ParseEndTime(endStamp)
				if err != nil {
					return err
				}
				window.EndTime = &t
			}

			algorithm, err := gitrepo.ParseAlgorithm(algorithmName)
			if err != nil {
				return err
			}

			return runExtract(cmd, path, window, withDiff, algorithm)
		},
	}

	cmd.Flags().BoolVar(&withDiff, "with-diff", false,
		"include each commit's diff against its first parent")
	cmd.Flags().StringVar(&algorithmName, "diff-algorithm", "histogram",
		"diff algorithm: histogram, myers, or myers-minimal")
	cmd.Flags().StringVar(&startCommit, "start-commit", "",
		"oldest commit to include (inclusive)")
	cmd.Flags().StringVar(&endCommit, "end-commit", "",
		"newest commit to include (inclusive)")
	cmd.Flags().StringVarP(&startStamp, "start-timestamp", "s", "",
		"skip commits older than this timestamp")
	cmd.Flags().StringVarP(&endStamp, "end-timestamp", "e", "",
		"skip commits newer than this timestamp")

	return cmd
}

func runExtract(cmd *cobra.Command, path string, window gitrepo.Window, withDiff bool, algorithm gitrepo.Algorithm) error {
	repo, err := gitrepo.Open(path)
	if err != nil {
		return err
	}

	commits, err := repo.Commits(window)
	if err != nil {
		return err
	}

	extracted := make([]report.ExtractedCommit, 0, len(commits))
	for _, commit := range commits {
		var diff *string
		if withDiff {
			text, err := repo.DiffWithParent(commit, algorithm)
			if err != nil {
				return err
			}
			diff = &text
		}
		extracted = append(extracted, report.NewExtractedCommit(commit, diff))
	}

	return report.WriteJSON(cmd.OutOrStdout(), extracted)
}
