package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/config"
)

type emitOptions struct {
	level  string
	format string
	fields []string
	fail   string
}

func newEmitCmd(root *rootOptions) *cobra.Command {
	opts := &emitOptions{}
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Emit one event through the configured bridge",
		Example: `  xbridge emit --level warn --format "disk {disk} at {pct}%" --field disk=sda --field pct=93
  xbridge emit --fail "connection reset" --format "upload failed"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.level, "level", "l", "info", "structured level")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "hello from xbridge", "log_format template")
	cmd.Flags().StringArrayVar(&opts.fields, "field", nil, "event field as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.fail, "fail", "", "attach a failure with this error message")
	return cmd
}

func runEmit(root *rootOptions, opts *emitOptions) error {
	level, err := xbridge.ParseLevel(opts.level)
	if err != nil {
		return err
	}
	fields, err := parseFields(opts.fields)
	if err != nil {
		return err
	}
	cfg, err := root.load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	b, err := config.Build(*cfg, nil)
	if err != nil {
		return err
	}
	defer b.Close()

	en := b.Logger.WithLevel(level).Fields(fields...)
	if opts.fail != "" {
		en = en.Err(errors.New(opts.fail))
	}
	en.Msg(opts.format)
	return nil
}

// parseFields turns key=value pairs into fields. Values that parse as int,
// float or bool keep that type.
func parseFields(pairs []string) ([]xbridge.Field, error) {
	fs := make([]xbridge.Field, 0, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("field %q is not key=value", p)
		}
		fs = append(fs, xbridge.Any(k, typedValue(v)))
	}
	return fs, nil
}

func typedValue(v string) any {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}
