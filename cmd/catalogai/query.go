package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
)

func newInterpretCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "interpret <query>",
		Short: "Interpret a product query into filters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.interpret.Interpret(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), newInterpretationView(res))
			}
			printInterpretation(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog with an interpreted query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			interp, res, err := a.search.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				items := res.Items()
				if items == nil {
					items = []domcat.Item{}
				}
				return printJSON(out, struct {
					Interpretation interpretationView `json:"interpretation"`
					SearchMethod   string             `json:"search_method"`
					BasicCount     int                `json:"basic_count"`
					EnhancedCount  int                `json:"enhanced_count"`
					Products       []domcat.Item      `json:"products"`
				}{
					Interpretation: newInterpretationView(interp),
					SearchMethod:   string(res.Method()),
					BasicCount:     res.BasicCount(),
					EnhancedCount:  res.EnhancedCount(),
					Products:       items,
				})
			}

			printInterpretation(out, interp)
			fmt.Fprintf(out, "\nmethod: %s (basic %d, enhanced %d)\n\n",
				res.Method(), res.BasicCount(), res.EnhancedCount())
			printItems(out, res.Items())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of products (0 uses the configured default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// openApp builds the service graph for a one-shot command.
func openApp(ctx context.Context, opts *globalOptions) (*app, error) {
	cfg, logger, err := opts.load("cli")
	if err != nil {
		return nil, err
	}
	return buildApp(ctx, cfg, logger)
}
