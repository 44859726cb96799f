package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// interpretationView is the JSON shape of an interpretation on the command line.
type interpretationView struct {
	ID         string      `json:"interpretation_id"`
	Query      string      `json:"query"`
	Provenance string      `json:"provenance"`
	Model      string      `json:"model,omitempty"`
	Filters    filter.Set  `json:"filters"`
	Error      *failureRow `json:"error,omitempty"`
}

type failureRow struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func newInterpretationView(r interpretation.Result) interpretationView {
	v := interpretationView{
		ID:         r.ID(),
		Query:      r.Query(),
		Provenance: string(r.Provenance()),
		Model:      r.Model(),
		Filters:    r.Filters(),
	}
	if f := r.Failure(); f != nil {
		v.Error = &failureRow{Kind: string(f.Kind), Message: f.Message}
	}
	return v
}

func printInterpretation(w io.Writer, r interpretation.Result) {
	f := r.Filters()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "query:\t%s\n", r.Query())
	fmt.Fprintf(tw, "provenance:\t%s\n", r.Provenance())
	if r.Model() != "" {
		fmt.Fprintf(tw, "model:\t%s\n", r.Model())
	}
	if fl := r.Failure(); fl != nil {
		fmt.Fprintf(tw, "fallback reason:\t%s (%s)\n", fl.Kind, fl.Message)
	}
	for _, row := range [][2]string{
		{filter.KeyCategory, f.Category},
		{filter.KeyBrand, f.Brand},
		{filter.KeyColor, f.Color},
		{filter.KeyMaterial, f.Material},
		{filter.KeyGender, string(f.Gender)},
		{filter.KeyPriceTier, string(f.PriceTier)},
		{filter.KeyStyle, f.Style},
		{filter.KeySize, f.Size},
	} {
		if row[1] != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
		}
	}
	if len(f.Keywords) > 0 {
		fmt.Fprintf(tw, "keywords:\t%s\n", strings.Join(f.Keywords, ", "))
	}
	_ = tw.Flush()
}

func printItems(w io.Writer, items []domcat.Item) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tBRAND\tCATEGORY\tPRICE\tSTOCK")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%d\n", it.ID, it.Title, it.Brand, it.Category, it.Price, it.Stock)
	}
	_ = tw.Flush()
}
