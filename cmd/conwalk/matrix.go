package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/conwalk/conwalk/internal/conf"
	"github.com/conwalk/conwalk/internal/logr"
	"github.com/conwalk/conwalk/internal/testgen"
)

func matrixCommand(confDir *string, loggerCfg *logr.Config) *cobra.Command {
	var (
		config string
		key    string
		types  []string
		fields []string
	)
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Preview the test matrix an inventory expands into",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logr.New(loggerCfg)
			if err != nil {
				return err
			}

			loader := conf.NewLoader(*confDir)
			cfg, err := loader.Load(config)
			if err != nil {
				return err
			}
			inv, err := testgen.InventoryFromConfig(cfg, key)
			if err != nil {
				return err
			}

			declared := make(map[string]bool, len(fields))
			for _, f := range fields {
				declared[f] = true
			}
			m, err := testgen.SelectByType(logger, inv, types, fields, nil, declared)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			header := table.Row{"ID"}
			for _, name := range m.Argnames {
				header = append(header, name)
			}
			tw.AppendHeader(header)
			for i, row := range m.Argvalues {
				tr := table.Row{m.IDs[i]}
				for _, v := range row {
					tr = append(tr, v)
				}
				tw.AppendRow(tr)
			}
			tw.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "decision: %s\n", testgen.Decide(logger, "matrix preview", m))
			return nil
		},
	}
	cmd.Flags().StringVar(&config, "config", "cfme_data", "Config the inventory lives in")
	cmd.Flags().StringVar(&key, "key", "management_systems", "Top-level config key holding the inventory")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Restrict to these inventory types (default all)")
	cmd.Flags().StringSliceVar(&fields, "fields", []string{"name", "type"}, "Inventory fields to project into the matrix")
	return cmd
}
