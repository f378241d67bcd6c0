package main

import (
	"fmt"
	"io"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	var (
		file      string
		questions bool
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the question catalog, or validate a custom one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfg.CatalogFile
			if file != "" {
				path = file
			}
			cat, err := catalog.Load(path)
			if err != nil {
				return err
			}
			if file != "" {
				fmt.Fprintln(cmd.OutOrStdout(), green("Catalog is valid: "+file))
			}
			printCatalog(cmd.OutOrStdout(), cat, questions)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "catalog YAML to validate instead of the configured one")
	cmd.Flags().BoolVar(&questions, "questions", false, "list every question")
	return cmd
}

func printCatalog(w io.Writer, cat *catalog.Catalog, questions bool) {
	for _, p := range cat.Ordered() {
		fmt.Fprintf(w, "%s %s  %s\n", bold(p.Name), gray("("+string(p.Key)+")"),
			fmt.Sprintf("%d questions, weight %.2g", len(p.Questions), cat.Weight(p.Key)))
		if !questions {
			continue
		}
		for _, q := range p.Questions {
			fmt.Fprintf(w, "  %s  %s\n", yellow(q.ID), q.Text(false))
		}
	}
	fmt.Fprintf(w, "\n%s\n", bold("Global Brand Health"))
	for _, ind := range cat.Indicators {
		fmt.Fprintf(w, "  %s %s\n", ind.Name, gray(fmt.Sprint(ind.Questions)))
	}
}
