package main

import (
	"github.com/spf13/cobra"

	"github.com/trickstertwo/xbridge/config"
)

type rootOptions struct {
	configPath string
	backend    string
	output     string
}

// load reads the config file (or only the environment when no file was
// given) and applies command-line overrides.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.output != "" {
		cfg.Output = o.output
	}
	return cfg, cfg.Validate()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "xbridge",
		Short:         "Bridge structured events into a classic logging backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (yaml or json)")
	root.PersistentFlags().StringVarP(&opts.backend, "backend", "b", "", "backend override: slog, zap, zerolog or logrus")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "output override: stdout, stderr or a file path")

	root.AddCommand(newEmitCmd(opts), newLevelsCmd(opts))
	return root
}
