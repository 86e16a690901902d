package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/conwalk/conwalk/internal/automate"
	"github.com/conwalk/conwalk/internal/cloud"
	"github.com/conwalk/conwalk/internal/configure"
	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/infra"
	"github.com/conwalk/conwalk/internal/logr"
	"github.com/conwalk/conwalk/internal/nav"
	"github.com/conwalk/conwalk/internal/services"
)

// allContributions assembles every feature package's destinations, the
// same set a test session wires up.
func allContributions(p console.Page) []nav.Contribution {
	var contribs []nav.Contribution
	contribs = append(contribs, infra.Navigation(p)...)
	contribs = append(contribs, cloud.Navigation(p)...)
	contribs = append(contribs, services.Navigation(p)...)
	contribs = append(contribs, automate.Navigation(p)...)
	contribs = append(contribs, configure.Navigation(p)...)
	return contribs
}

func navCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "List navigation destinations and their paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Destinations are listed without driving a browser, so the
			// graph is assembled over an inert page.
			page := console.NewFakePage()
			ui, err := console.New(logr.Discard(), page, allContributions(page))
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Destination", "Path"})
			for _, name := range ui.Nav.Names() {
				path, err := ui.Nav.Path(name)
				if err != nil {
					return err
				}
				tw.AppendRow(table.Row{name, strings.Join(path, " > ")})
			}
			tw.Render()
			return nil
		},
	}
}
