package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/conwalk/conwalk/internal/conf"
)

func confCommand(confDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "conf [name]",
		Short: "Print a merged config, local overlay applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := conf.NewLoader(*confDir)
			merged, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(merged)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
