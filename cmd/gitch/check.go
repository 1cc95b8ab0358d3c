package main

import (
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/noxpardalis/gitch/internal/clierr"
	"github.com/noxpardalis/gitch/internal/config"
	"github.com/noxpardalis/gitch/internal/engine"
	"github.com/noxpardalis/gitch/internal/gitrepo"
	"github.com/noxpardalis/gitch/internal/nlp"
	"github.com/noxpardalis/gitch/internal/report"
	"github.com/noxpardalis/gitch/internal/ui"
)

// tagCacheFile is the sqlite database holding previously tagged summaries,
// stored next to the tagging models.
const tagCacheFile = "tags.db"

func createCheckCommand() *cobra.Command {
	var (
		configPath string
		offline    bool
	)

	cmd := &cobra.Command{
		Use:   "check [repository]",
		Short: "Check commits against the repository's rule set",
		Long: "Check walks the repository history and evaluates every commit " +
			"against the rule set, printing a JSON report of violations.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runCheck(cmd, path, configPath, offline)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"path to the rule file (default: discovered at the repository root)")
	cmd.Flags().BoolVar(&offline, "offline", false,
		"fail instead of fetching missing tagging models")

	return cmd
}

func runCheck(cmd *cobra.Command, path, configPath string, offline bool) error {
	repo, err := gitrepo.Open(path)
	if err != nil {
		return err
	}

	if configPath == "" {
		configPath, err = config.Locate(repo.Root())
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log.Debug().Str("config", configPath).Msg("loaded rule set")

	commits, err := repo.Commits(gitrepo.Window{StartID: cfg.StartingFrom})
	if err != nil {
		return err
	}

	modelDir := nlp.ModelDir()
	loader := nlp.NewCachingLoader(
		nlp.NewDiskLoader(modelDir),
		filepath.Join(modelDir, tagCacheFile),
	)

	outcome, err := engine.New(cfg, engine.Options{
		Source:   repo,
		Loader:   loader,
		Reporter: ui.NewProgress(),
		Offline:  offline,
	}).Check(commits)
	if err != nil {
		return err
	}

	if outcome.Failed() {
		if err := report.WriteJSON(cmd.OutOrStdout(), outcome.Failing); err != nil {
			return err
		}
		log.Error().Msgf("checks failed: %d/%d commits had violations",
			len(outcome.Failing), outcome.Total)
		return clierr.Silent(clierr.CodeViolations)
	}

	log.Info().Msgf("checks passed: %d/%d commits were valid",
		outcome.Total, outcome.Total)
	return nil
}
