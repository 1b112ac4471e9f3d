/*
Package main implements timerflame, a viewer for timer traces.

A trace is a JSON document listing named intervals ("timers") recorded by an
instrumented program. timerflame sorts the timers by duration, places each on
the lowest display row where it overlaps nothing already placed, and draws the
result as a flame-row chart: a standalone HTML page with a zoom slider and a
hover inspector, an SVG image, an interactive terminal inspector, or a small
HTTP viewer that accepts uploads.
*/
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// Global debug flag
var debugMode bool

// debugPrint prints debug messages when debug mode is enabled
func debugPrint(format string, args ...interface{}) {
	if debugMode {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	configFile  string
	minDuration float64
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "timerflame",
		Short: "Render timer traces as flame-row charts",
		Long: `Render a JSON trace of named time intervals as a flame-row chart.

The trace file looks like:
  {"timers": [{"name": "...", "startTime": 0, "endTime": 0, "durationNs": 0}]}

Timers are sorted by duration, shortest first, and each one is put on the
lowest row where it overlaps no timer already placed there.

If no config file is specified, default settings will be used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML configuration file (optional)")
	root.PersistentFlags().Float64Var(&opts.minDuration, "min-duration", 0, "Drop timers shorter than this many nanoseconds (overrides trace.min_duration_ns)")

	root.AddCommand(
		newRenderCommand(opts),
		newInspectCommand(opts),
		newServeCommand(opts),
		newListCommand(opts),
	)
	return root
}

// loadOptions loads the configuration and applies flag overrides.
func loadOptions(cmd *cobra.Command, opts *options) (Config, error) {
	config, err := loadConfig(opts.configFile)
	if err != nil {
		return Config{}, fmt.Errorf("error loading configuration: %w", err)
	}
	if cmd.Flags().Changed("min-duration") {
		config.Trace.MinDurationNs = opts.minDuration
	}
	debugPrint("Configuration loaded. Divisor: %v, row height: %d, zoom: %v",
		config.Layout.Divisor, config.Layout.RowHeight, config.Zoom.Value)
	return config, nil
}

// traceArgument returns the trace path from --trace or the single positional
// argument.
func traceArgument(flagValue string, args []string) string {
	if flagValue != "" {
		return flagValue
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func newRenderCommand(opts *options) *cobra.Command {
	var traceFile, outputFile, format string

	cmd := &cobra.Command{
		Use:   "render [trace.json]",
		Short: "Write the chart as an HTML page or an SVG image",
		Example: `  timerflame render --trace timers.json
  timerflame render timers.json --format svg --output timers.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := traceArgument(traceFile, args)
			if path == "" {
				return fmt.Errorf("trace file is required, use --trace to specify the file")
			}
			config, err := loadOptions(cmd, opts)
			if err != nil {
				return err
			}

			format, err = outputFormat(format, outputFile)
			if err != nil {
				return err
			}

			trace, err := loadTrace(path)
			if err != nil {
				return err
			}
			timers := trace.Heavy(config.Trace.MinDurationNs)
			fmt.Printf("Loaded %d timers from %s\n", len(timers), path)

			layout := renderLayout(timers, config)

			var out bytes.Buffer
			switch format {
			case "svg":
				writeSVG(&out, layout, config)
			default:
				err = writeHTML(&out, htmlPage{
					Title:  filepath.Base(path),
					Source: filepath.Base(path),
					Layout: layout,
					Config: config,
				})
				if err != nil {
					return fmt.Errorf("error rendering HTML: %w", err)
				}
			}

			outputPath := getOutputFilename(path, outputFile, "."+format)
			if err := os.WriteFile(outputPath, out.Bytes(), 0644); err != nil {
				return fmt.Errorf("error writing chart file: %w", err)
			}

			fmt.Printf("Chart generated successfully: %s (%d rows)\n", outputPath, layout.Rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&traceFile, "trace", "", "JSON trace file with timers (required)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output filename (optional)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: html or svg (default: from --output extension, else html)")
	return cmd
}

func newInspectCommand(opts *options) *cobra.Command {
	var traceFile string

	cmd := &cobra.Command{
		Use:   "inspect [trace.json]",
		Short: "Browse the chart in an interactive terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := traceArgument(traceFile, args)
			if path == "" {
				return fmt.Errorf("trace file is required, use --trace to specify the file")
			}
			config, err := loadOptions(cmd, opts)
			if err != nil {
				return err
			}

			v := newViewer(config)
			if err := v.LoadFile(path); err != nil {
				return err
			}
			return runInspector(v, path, config)
		},
	}

	cmd.Flags().StringVar(&traceFile, "trace", "", "JSON trace file with timers (required)")
	return cmd
}

func newServeCommand(opts *options) *cobra.Command {
	var traceFile string
	var port int

	cmd := &cobra.Command{
		Use:   "serve [trace.json]",
		Short: "Serve the chart over HTTP with a trace upload form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadOptions(cmd, opts)
			if err != nil {
				return err
			}

			v := newViewer(config)
			if path := traceArgument(traceFile, args); path != "" {
				if err := v.LoadFile(path); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s := &server{viewer: v, config: config}
			return s.listenAndServe(ctx, fmt.Sprintf(":%d", port))
		},
	}

	cmd.Flags().StringVar(&traceFile, "trace", "", "JSON trace file to show on start (optional)")
	cmd.Flags().IntVar(&port, "port", 7428, "HTTP listen port")
	return cmd
}

func newListCommand(opts *options) *cobra.Command {
	var traceFile string

	cmd := &cobra.Command{
		Use:   "list [trace.json]",
		Short: "Print every timer, longest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := traceArgument(traceFile, args)
			if path == "" {
				return fmt.Errorf("trace file is required, use --trace to specify the file")
			}
			config, err := loadOptions(cmd, opts)
			if err != nil {
				return err
			}
			trace, err := loadTrace(path)
			if err != nil {
				return err
			}
			return writeTimerLog(cmd.OutOrStdout(), trace.Heavy(config.Trace.MinDurationNs))
		},
	}

	cmd.Flags().StringVar(&traceFile, "trace", "", "JSON trace file with timers (required)")
	return cmd
}

// outputFormat resolves the chart format from --format, falling back to the
// extension of --output and then to HTML.
func outputFormat(format, outputFile string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(outputFile), ".svg") {
			return "svg", nil
		}
		return "html", nil
	}
	switch f := strings.ToLower(format); f {
	case "html", "svg":
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q, want html or svg", format)
	}
}

// getOutputFilename determines the output filename for the chart.
// If outputFile is provided and not empty, it returns that filename.
// Otherwise, it derives the filename from the trace file by replacing
// the extension with ext (e.g., "timers.json" becomes "timers.html").
func getOutputFilename(traceFile, outputFile, ext string) string {
	if outputFile != "" {
		return outputFile
	}

	base := filepath.Base(traceFile)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
