package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview FILE",
		Short: "Show the detected header, column mapping and a sample of rows",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	rules, err := loadRules()
	if err != nil {
		return err
	}
	overrides, err := parseOverrides(cmd)
	if err != nil {
		return err
	}

	parsed, err := parseFile(args[0], rules, overrides)
	if err != nil {
		return err
	}

	printMapping(os.Stdout, parsed.Header, parsed.Mapping)
	fmt.Fprintf(os.Stdout, "Rows: %d data, %d importable, %d dropped\n",
		parsed.DataRows, len(parsed.Records), parsed.DataRows-len(parsed.Records))

	sample := parsed.Records
	if len(sample) > 5 {
		sample = sample[:5]
	}
	for _, r := range sample {
		category := "-"
		if r.Category != nil {
			category = *r.Category
		}
		fmt.Fprintf(os.Stdout, "  %s  %-7s %12.2f  %-10s %s\n",
			r.Date.Format("2006-01-02"), r.Type, r.Amount, category, r.Description)
	}
	return nil
}
