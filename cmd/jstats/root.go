package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jeopardy-stats-service/internal/config"
	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/metrics"
	"jeopardy-stats-service/internal/server"
)

const appVersion = "dev"

// app carries state shared by the subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer

	cfg    config.Config
	logger *slog.Logger

	gameDir       string
	questionsFile string
	verbose       bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "jstats",
		Short:         "Normalize Jeopardy! games and answer statistical questions about them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.gameDir, "data", "", "Season bucket directory (default from GAME_DATA_DIR)")
	root.PersistentFlags().StringVar(&a.questionsFile, "questions", "", "Saved questions file (default from QUESTIONS_FILE)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newIngestCmd(a),
		newQueriesCmd(a),
		newAnalyzeCmd(a),
		newSeasonsCmd(a),
		newAskCmd(a),
	)
	return root
}

func (a *app) init() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.gameDir != "" {
		cfg.Data.GameDir = a.gameDir
	}
	if a.questionsFile != "" {
		cfg.Data.QuestionsFile = a.questionsFile
	}

	level := cfg.Log.Level
	if level == "" {
		level = "warn"
	}
	if a.verbose {
		level = "debug"
	}
	a.cfg = cfg
	a.logger = logging.NewLoggerWithWriter(a.errOut, logging.Config{
		Level:   level,
		Format:  cfg.Log.Format,
		Service: "jstats",
		Version: appVersion,
	})
	return nil
}

func (a *app) services(cmd *cobra.Command) (server.Services, error) {
	return server.BuildServices(cmd.Context(), a.cfg, a.logger, metrics.NewRecorder())
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
