package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/catalogai/internal/domain/validation"
)

func newValidateCmd(opts *globalOptions) *cobra.Command {
	var (
		field    string
		category string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "validate <content>",
		Short: "Validate a product field against content rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := a.validate.ValidateField(cmd.Context(), field, strings.Join(args, " "), category)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), rep)
			}
			printReport(cmd, rep)
			return nil
		},
	}
	cmd.Flags().StringVarP(&field, "field", "f", string(validation.Title), "field name: title, description, meta, features, price, brand")
	cmd.Flags().StringVarP(&category, "category", "c", "", "product category for context")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printReport(cmd *cobra.Command, rep validation.Report) {
	out := cmd.OutOrStdout()
	verdict := "valid"
	if !rep.IsValid {
		verdict = "invalid"
	}
	fmt.Fprintf(out, "%s: %s (%s)\n", rep.Field, verdict, rep.Message)
	for _, issue := range rep.Issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}
	if rep.Analysis != "" {
		fmt.Fprintf(out, "\n%s\n", rep.Analysis)
	}
}
