// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/coursepath/internal/config"
	"github.com/tomtom215/coursepath/internal/database"
	"github.com/tomtom215/coursepath/internal/events"
	"github.com/tomtom215/coursepath/internal/logging"
	"github.com/tomtom215/coursepath/internal/recommend"
)

// Exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

// cli carries global flag values and the loaded configuration.
type cli struct {
	driver   string
	dbPath   string
	compact  bool
	noRunLog bool

	loadConfig func() (*config.Config, error)
	cfg        *config.Config
	out        io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newRootCmdWithConfig(out, config.Load)
}

func newRootCmdWithConfig(out io.Writer, load func() (*config.Config, error)) *cobra.Command {
	c := &cli{loadConfig: load, out: out}

	root := &cobra.Command{
		Use:   "coursepath",
		Short: "Batch access to the Coursepath recommendation engine",
		Long: `coursepath runs the recommendation engine against a local catalog
database without starting the HTTP server. Output is JSON on stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if c.driver != "" {
				cfg.Database.Driver = c.driver
			}
			if c.dbPath != "" {
				cfg.Database.Path = c.dbPath
			}
			c.cfg = cfg
			logging.Init(logging.Config{
				Level:  cfg.Logging.Level,
				Format: "console",
				Caller: cfg.Logging.Caller,
			})
			return nil
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.driver, "driver", "", "database driver (duckdb or sqlite3); overrides DB_DRIVER")
	flags.StringVar(&c.dbPath, "db", "", "database path; overrides DB_PATH")
	flags.BoolVar(&c.compact, "compact", false, "print compact JSON")
	flags.BoolVar(&c.noRunLog, "no-run-log", false, "do not record runs in agent_logs")

	root.AddCommand(
		newRecommendCmd(c),
		newScoreCmd(c),
		newCoursesCmd(c),
		newSeedCmd(c),
		newTokenCmd(c),
	)
	return root
}

// openDB opens the configured database. The caller must close it.
func (c *cli) openDB() (*database.DB, error) {
	db, err := database.New(&c.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// newEngine builds an engine reading straight from db. Runs are written to
// agent_logs unless --no-run-log is set.
func (c *cli) newEngine(db *database.DB) (*recommend.Engine, error) {
	engine, err := recommend.NewEngine(c.cfg.Recommend.EngineConfig(), logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("initialize recommendation engine: %w", err)
	}
	engine.SetDataProvider(db)
	if !c.noRunLog {
		engine.AddObserver(runLogObserver{db: db})
	}
	return engine, nil
}

// output writes v as JSON.
func (c *cli) output(v interface{}) error {
	enc := json.NewEncoder(c.out)
	if !c.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// runLogObserver writes run records synchronously; the CLI has no event
// router.
type runLogObserver struct {
	db *database.DB
}

func (o runLogObserver) ObserveRun(ctx context.Context, rec *recommend.RunRecord) {
	event, err := events.NewRunEvent(rec)
	if err != nil {
		logging.Warn().Err(err).Str("run_id", rec.RunID).Msg("Failed to encode run record")
		return
	}
	if err := o.db.InsertRunLog(context.WithoutCancel(ctx), event.RunLogEntry()); err != nil {
		logging.Warn().Err(err).Str("run_id", rec.RunID).Msg("Failed to write run log")
	}
}
