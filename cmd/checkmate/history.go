package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/ewatkins/checkmate/internal/adapter/driven/sqlite"
	"github.com/ewatkins/checkmate/internal/config"
)

// newHistoryCommand lists past runs recorded with --history.
func newHistoryCommand() *cobra.Command {
	var (
		dbPath  string
		limit   int
		results bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded compliance runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				dbPath = cfg.HistoryPath
			}
			if dbPath == "" {
				return fmt.Errorf("no history database: pass --history or set it in the config file")
			}

			db, err := sqliteadapter.NewDB(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
				return err
			}
			repo := sqliteadapter.NewRunRepo(db)

			ctx := cmd.Context()
			runs, err := repo.ListRuns(ctx, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, run := range runs {
				fmt.Fprintf(out, "#%d  %s  %s  (%s)\n",
					run.ID,
					run.StartedAt.Format(time.RFC3339),
					run.CommitRange,
					run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
				)

				if !results {
					continue
				}
				rs, err := repo.GetResultsByRun(ctx, run.ID)
				if err != nil {
					return err
				}
				for _, r := range rs {
					if r.Message != "" {
						fmt.Fprintf(out, "    %-20s %-8s %s\n", r.Name, r.Status, r.Message)
						continue
					}
					fmt.Fprintf(out, "    %-20s %s\n", r.Name, r.Status)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "history", "", "SQLite history database (default from config file)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&results, "results", false, "Show per-check results for each run")

	return cmd
}
