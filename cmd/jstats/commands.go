package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jeopardy-stats-service/internal/app/analysis"
	"jeopardy-stats-service/internal/sandbox"
)

func newIngestCmd(a *app) *cobra.Command {
	var source, rawDir, outDir string
	var startSeason int

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Normalize raw game files and write season buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source != "" {
				a.cfg.Data.Source = strings.ToLower(source)
			}
			if rawDir != "" {
				a.cfg.Data.RawDir = rawDir
			}
			if outDir != "" {
				a.cfg.Data.GameDir = outDir
			}
			if startSeason > 0 {
				a.cfg.Data.StartSeason = startSeason
			}
			svc, err := a.services(cmd)
			if err != nil {
				return err
			}
			summary, err := svc.Ingest.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Ingested %d games from %s into %s\n", summary.Games, summary.Provider, a.cfg.Data.GameDir)
			names := make([]string, 0, len(summary.Buckets))
			for name := range summary.Buckets {
				names = append(names, name)
			}
			slices.Sort(names)
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, name := range names {
				fmt.Fprintf(tw, "  %s\t%d\n", name, summary.Buckets[name])
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Raw game source: fs, remote or fixture (default from RAW_SOURCE)")
	cmd.Flags().StringVar(&rawDir, "raw", "", "Directory of scraped game JSON files (default from RAW_DATA_DIR)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory for season buckets (default from GAME_DATA_DIR)")
	cmd.Flags().IntVar(&startSeason, "start-season", 0, "Season assumed before the first season marker")
	return cmd
}

func newQueriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "queries",
		Short: "List the canned queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
			for _, q := range svc.Analysis.Queries() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", q.ID, q.Name, q.Description)
			}
			return tw.Flush()
		},
	}
}

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze QUERY [START] [END]",
		Short: "Run a canned query over a season range",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := seasonArgs(args[1:])
			if err != nil {
				return err
			}
			svc, err := a.services(cmd)
			if err != nil {
				return err
			}
			out, err := svc.Analysis.Analyze(cmd.Context(), args[0], start, end)
			if err != nil {
				var unknown *analysis.UnknownQueryError
				if errors.As(err, &unknown) && len(unknown.Suggestions) > 0 {
					return fmt.Errorf("%w (did you mean: %s?)", err, strings.Join(unknown.Suggestions, ", "))
				}
				return err
			}
			return a.printJSON(out)
		},
	}
}

func newSeasonsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List the regular seasons on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd)
			if err != nil {
				return err
			}
			info, err := svc.Analysis.Seasons()
			if err != nil {
				return err
			}
			if len(info.Seasons) == 0 {
				fmt.Fprintf(a.out, "No seasons found in %s\n", a.cfg.Data.GameDir)
				return nil
			}
			parts := make([]string, len(info.Seasons))
			for i, s := range info.Seasons {
				parts[i] = strconv.Itoa(s)
			}
			fmt.Fprintf(a.out, "Seasons %d-%d (%d): %s\n", *info.Min, *info.Max, len(info.Seasons), strings.Join(parts, " "))
			return nil
		},
	}
}

func newAskCmd(a *app) *cobra.Command {
	var start, end int
	var summary string
	var save bool

	cmd := &cobra.Command{
		Use:   `ask "QUESTION"`,
		Short: "Generate and run an analysis program for a free-form question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd)
			if err != nil {
				return err
			}
			out, err := svc.Analysis.Ask(cmd.Context(), analysis.AskRequest{
				Question:     args[0],
				Summary:      summary,
				StartSeason:  start,
				EndSeason:    end,
				SaveQuestion: save,
			})
			if err != nil {
				if execErr, ok := sandbox.AsExecError(err); ok && out.Code != "" {
					fmt.Fprintf(a.errOut, "generated code (%s failure):\n%s\n", execErr.Kind, out.Code)
				}
				return err
			}
			return a.printJSON(out)
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "First season (default 1)")
	cmd.Flags().IntVar(&end, "end", 0, "Last season (default 99)")
	cmd.Flags().StringVar(&summary, "summary", "", "Short summary stored with a saved question")
	cmd.Flags().BoolVar(&save, "save", false, "Save the question for reuse")
	return cmd
}

// seasonArgs parses the optional START and END positionals. Missing values are 0.
func seasonArgs(args []string) (int, int, error) {
	var bounds [2]int
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid season %q: %w", arg, err)
		}
		bounds[i] = n
	}
	return bounds[0], bounds[1], nil
}
