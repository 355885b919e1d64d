package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/config"
)

func newLevelsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "levels [backend]",
		Short: "Print how structured levels map onto a backend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := root.backend
			if len(args) == 1 {
				backend = args[0]
			}
			if backend == "" {
				cfg, err := root.load()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				backend = cfg.Backend
			}
			m, err := config.Levels(backend)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-9s %5s  %s\n", "LEVEL", "CODE", "NAME")
			for _, l := range xbridge.Levels() {
				code, _ := m.ToLegacy(l)
				fmt.Fprintf(out, "%-9s %5d  %s\n", l, code, m.LegacyName(code))
			}
			return nil
		},
	}
}
