package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	githubadapter "github.com/ewatkins/checkmate/internal/adapter/driven/github"
	sqliteadapter "github.com/ewatkins/checkmate/internal/adapter/driven/sqlite"
	"github.com/ewatkins/checkmate/internal/application"
	"github.com/ewatkins/checkmate/internal/checks"
	"github.com/ewatkins/checkmate/internal/config"
	"github.com/ewatkins/checkmate/internal/domain/model"
	"github.com/ewatkins/checkmate/internal/domain/port/driven"
	"github.com/ewatkins/checkmate/internal/registry"
	"github.com/ewatkins/checkmate/internal/report"
)

var version = "dev"

// rootOptions holds the flag values bound on the root command.
type rootOptions struct {
	commits     string
	github      bool
	repo        string
	pullRequest int
	sha         string
	status      bool
	output      string
	list        bool
	modules     []string
	excludes    []string
	preview     string
	history     string
	timeout     time.Duration
	debug       bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "checkmate",
		Short:        "Run compliance checks against a commit range",
		Long:         "Checkmate runs a fixed set of compliance checks (coding style, commit\nmessages, licensing, Kconfig, documentation) against a commit range,\nwrites a JUnit XML report, and can mirror per-check status to GitHub as\ncommit statuses plus a single consolidated PR comment.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.commits, "commits", "c", "", "Commit range in the form: a..b")
	cmd.Flags().BoolVarP(&opts.github, "github", "g", false, "Send results to GitHub as statuses and a comment")
	cmd.Flags().StringVarP(&opts.repo, "repo", "r", "", "GitHub repository as owner/name")
	cmd.Flags().IntVarP(&opts.pullRequest, "pull-request", "p", 0, "Pull request number")
	cmd.Flags().StringVarP(&opts.sha, "sha", "S", "", "Commit SHA to attach statuses to")
	cmd.Flags().BoolVarP(&opts.status, "status", "s", false, "Set all statuses to pending and exit")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "compliance.xml", "Name of the JUnit XML output file")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "List all checks and exit")
	cmd.Flags().StringArrayVarP(&opts.modules, "module", "m", nil, "Checks to run; default is everything (can be repeated)")
	cmd.Flags().StringArrayVarP(&opts.excludes, "exclude-module", "e", nil, "Checks not to run (can be repeated)")
	cmd.Flags().StringVar(&opts.preview, "preview", "", "Write an HTML preview of the consolidated comment to this path")
	cmd.Flags().StringVar(&opts.history, "history", "", "Record the run into this SQLite history database")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-check timeout (default 5m)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newHistoryCommand())

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if opts.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	if opts.list {
		for _, name := range reg.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.status {
		return setPending(ctx, cfg, reg, opts)
	}

	if opts.commits == "" {
		return errors.New("no commit range given")
	}

	repoDir, err := os.Getwd()
	if err != nil {
		return err
	}

	excludes := append(append([]string(nil), opts.excludes...), cfg.Excludes...)
	defs, err := reg.List(opts.modules, excludes)
	if err != nil {
		return err
	}

	timeout := opts.timeout
	if timeout <= 0 {
		timeout = cfg.CheckTimeout
	}

	historyPath := opts.history
	if historyPath == "" {
		historyPath = cfg.HistoryPath
	}

	var store driven.RunStore
	if historyPath != "" {
		db, err := sqliteadapter.NewDB(historyPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing history database", "error", closeErr)
			}
		}()
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			return err
		}
		store = sqliteadapter.NewRunRepo(db)
	}

	params := model.RunParams{
		Range:    model.RevisionRange(opts.commits),
		RepoDir:  repoDir,
		BasePath: cfg.BasePath,
	}

	runner := application.NewRunService(params, timeout, store)
	suite, err := runner.Run(ctx, defs)
	if err != nil {
		return err
	}

	defsByName := definitionIndex(reg)
	if err := report.WriteJUnit(suite, defsByName, opts.output); err != nil {
		return err
	}

	if opts.preview != "" {
		body, _ := application.BuildComment(suite, defsByName)
		if err := report.WritePreview(body, opts.preview); err != nil {
			return err
		}
	}

	count := suite.ExitCode()
	if opts.github && cfg.HasGitHubToken() {
		sync := application.NewSyncService(githubadapter.NewClient(cfg.GitHubToken), opts.repo)
		count, err = sync.Publish(ctx, suite, defsByName, opts.sha, opts.pullRequest)
		if err != nil {
			return fmt.Errorf("publish results: %w", err)
		}
	}

	if count > 0 {
		return &issuesFoundError{Count: count}
	}
	return nil
}

// setPending marks every known check pending on the target commit. Without a
// credential this is a documented no-op so unauthenticated CI legs stay green.
func setPending(ctx context.Context, cfg *config.Config, reg *registry.Registry, opts *rootOptions) error {
	if !cfg.HasGitHubToken() {
		slog.Info("no github token configured, skipping pending statuses")
		return nil
	}
	if opts.repo == "" || opts.sha == "" {
		return errors.New("--status requires --repo and --sha")
	}

	defs, err := reg.List(nil, nil)
	if err != nil {
		return err
	}

	sync := application.NewSyncService(githubadapter.NewClient(cfg.GitHubToken), opts.repo)
	return sync.SetPending(ctx, defs, opts.sha)
}

// buildRegistry registers the static catalog, applying per-check doc URL
// overrides from the config file.
func buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.New()
	for _, def := range checks.Catalog() {
		if doc, ok := cfg.DocOverrides[def.Name]; ok {
			def.DocURL = doc
		}
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func definitionIndex(reg *registry.Registry) map[string]model.CheckDefinition {
	defs := make(map[string]model.CheckDefinition, reg.Len())
	for _, name := range reg.Names() {
		if def, ok := reg.Lookup(name); ok {
			defs[name] = def
		}
	}
	return defs
}

func execute() error {
	return newRootCommand().Execute()
}
