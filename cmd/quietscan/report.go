package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/quietscan/internal/archive"
	"github.com/HendryAvila/quietscan/internal/render"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Browse archived scan reports",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := archive.New(archive.Config{DataDir: a.cfg.DataDir})
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			reports, err := store.List(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(reports) == 0 {
				fmt.Fprintln(out, gray("No reports archived yet."))
				return nil
			}
			for _, r := range reports {
				fmt.Fprintf(out, "%s  %s  %s/%s  owner %s  clients %s  %s\n",
					yellow(r.ID), r.CreatedAt, r.InitialWho, r.Scope,
					render.FmtScore(r.OwnerScore), render.FmtScore(r.ClientsScore),
					gray(strings.Join(r.Roles, ",")))
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum number of reports")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one report with its data package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := archive.New(archive.Config{DataDir: a.cfg.DataDir})
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			r, err := store.Get(args[0])
			if errors.Is(err, archive.ErrNotFound) {
				return fmt.Errorf("no report with id %s", args[0])
			}
			if err != nil {
				return err
			}
			text, err := render.Final(r.Payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n\n%s\n", bold("Report"), yellow(r.ID), text)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
