package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/vidprep"
	"github.com/five82/vidprep/internal/config"
	"github.com/five82/vidprep/internal/reporter"
)

func newProbeCmd() *cobra.Command {
	var (
		raw          bool
		jsonOutput   bool
		ffprobePath  string
		probeTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe FILE",
		Short: "Show the metadata vidprep extracts from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rep reporter.Reporter = reporter.NewTerminalReporterWithWriter(cmd.OutOrStdout(), false)
			if jsonOutput {
				rep = reporter.NewJSONReporterWithWriter(cmd.OutOrStdout())
			}

			v, err := vidprep.New(
				vidprep.WithFFprobePath(ffprobePath),
				vidprep.WithProbeTimeout(probeTimeout),
				vidprep.WithReporter(rep),
			)
			if err != nil {
				return usageError(fmt.Errorf("invalid configuration: %w", err))
			}

			if !raw {
				_, err := v.Inspect(cmd.Context(), args[0])
				return err
			}

			result, err := v.ProbeRaw(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&raw, "raw", false, "Print the parsed ffprobe output instead of the summary")
	f.BoolVar(&jsonOutput, "json", false, "Emit the summary as a JSON event")
	f.StringVar(&ffprobePath, "ffprobe", config.DefaultFFprobePath, "ffprobe executable")
	f.DurationVar(&probeTimeout, "probe-timeout", config.DefaultProbeTimeout, "Upper bound on the ffprobe run")

	return cmd
}
