package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/roadmap/internal/chart"
	"github.com/bryan-cox/roadmap/internal/layout"
	"github.com/bryan-cox/roadmap/internal/model"
	"github.com/bryan-cox/roadmap/internal/preview"
	"github.com/bryan-cox/roadmap/internal/roadmap"
	"github.com/bryan-cox/roadmap/internal/viewer"
)

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	outputPath   string
	renderFormat = formatValue(chart.FormatPNG)
	chartWidth   = newLengthValue("14in")
	chartHeight  = newLengthValue("8in")
	openViewer   bool
	colorMode    = colorValue(preview.ColorAuto)
	cellWidth    int

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "roadmap",
		Short: "Draw the 4-year FL-IDS research timeline as a Gantt chart.",
		Long:  `Roadmap renders the fixed FL-IDS research timeline as a Gantt chart: one bar per task, colored by year, on a quarter-labelled axis with a legend.`,
	}

	// renderCmd represents the render command
	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Write the chart as an image.",
		Long:  `Renders the timeline to PNG or SVG. The format follows --format, or the --output extension when --format is not given. Without --output the chart goes to roadmap.<format>, or to stdout when stdout is not a terminal.`,
		Run:   runRenderCommand,
	}

	// previewCmd represents the preview command
	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Print the chart in the terminal.",
		Long:  `Prints the timeline as a text Gantt chart with one line per task, a quarter ruler and the legend.`,
		Run:   runPreviewCommand,
	}

	// exportCmd represents the export command
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Print the task table as YAML.",
		Long:  `Prints the embedded task table, palette and tick labels as YAML.`,
		Run:   runExportCommand,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Errors from commands are handled by slog, so we just exit.
		os.Exit(1)
	}
}

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file, or - for stdout.")
	renderCmd.Flags().Var(&renderFormat, "format", "Image format: png or svg.")
	renderCmd.Flags().Var(&chartWidth, "width", "Chart width, e.g. 14in or 35cm.")
	renderCmd.Flags().Var(&chartHeight, "height", "Chart height, e.g. 8in or 20cm.")
	renderCmd.Flags().BoolVar(&openViewer, "open", false, "Open the written file in the default viewer.")

	previewCmd.Flags().Var(&colorMode, "color", "Color output: auto, always or never.")
	previewCmd.Flags().IntVar(&cellWidth, "cell-width", 4, "Terminal columns per quarter.")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(exportCmd)
}

// --- Main Application Entry Point ---

func main() {
	// Setup structured JSON logger for errors.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	Execute()
}

// --- Command Execution Logic ---

func runRenderCommand(cmd *cobra.Command, args []string) {
	l, err := buildLayout()
	if err != nil {
		slog.Error("failed to build chart layout", "error", err)
		os.Exit(1)
	}

	format, err := resolveFormat(cmd.Flags().Changed("format"), chart.Format(renderFormat), outputPath)
	if err != nil {
		slog.Error("failed to resolve output format", "error", err, "output", outputPath)
		os.Exit(1)
	}
	opts := chart.Options{Width: chartWidth.length, Height: chartHeight.length, Format: format}

	path := outputPath
	if path == "" {
		if !isTerminal(cmd.OutOrStdout()) {
			path = "-"
		} else {
			path = "roadmap." + string(format)
		}
	}

	if path == "-" {
		if openViewer {
			slog.Warn("ignoring --open when writing to stdout")
		}
		if err := chart.Render(cmd.OutOrStdout(), l, opts); err != nil {
			slog.Error("failed to render chart", "error", err, "format", format)
			os.Exit(1)
		}
		return
	}

	if err := writeChart(path, l, opts); err != nil {
		slog.Error("failed to write chart", "error", err, "path", path, "format", format)
		os.Exit(1)
	}
	slog.Info("chart written", "path", path, "format", format, "rows", l.Rows())
	cmd.Printf("Wrote %s\n", path)

	if openViewer {
		if err := viewer.Open(context.Background(), path); err != nil {
			slog.Error("failed to open chart", "error", err, "path", path)
			os.Exit(1)
		}
	}
}

func runPreviewCommand(cmd *cobra.Command, args []string) {
	l, err := buildLayout()
	if err != nil {
		slog.Error("failed to build chart layout", "error", err)
		os.Exit(1)
	}

	opts := preview.Options{CellWidth: cellWidth, Color: preview.ColorMode(colorMode)}
	if err := preview.Render(cmd.OutOrStdout(), l, opts); err != nil {
		slog.Error("failed to print preview", "error", err, "cell_width", cellWidth)
		os.Exit(1)
	}
}

func runExportCommand(cmd *cobra.Command, args []string) {
	data, err := yaml.Marshal(newExport())
	if err != nil {
		slog.Error("failed to encode task table", "error", err)
		os.Exit(1)
	}
	cmd.Print(string(data))
}

// --- Helper Functions ---

func buildLayout() (model.Layout, error) {
	return layout.Build(roadmap.Tasks(), roadmap.Palette(), roadmap.Title)
}

// resolveFormat prefers an explicit --format, then the output extension.
func resolveFormat(explicit bool, flagFormat chart.Format, path string) (chart.Format, error) {
	if explicit || path == "" || path == "-" {
		return flagFormat, nil
	}
	format, err := chart.FormatFromPath(path)
	if err != nil {
		return "", fmt.Errorf("cannot infer format from %q, pass --format: %w", path, err)
	}
	return format, nil
}

// writeChart renders into path. A failed render leaves no file behind.
func writeChart(path string, l model.Layout, opts chart.Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create '%s': %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close '%s': %w", path, cerr)
		}
		if err != nil {
			if rerr := os.Remove(path); rerr != nil {
				slog.Warn("could not remove partial chart", "path", path, "error", rerr)
			}
		}
	}()
	return chart.Render(f, l, opts)
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// exportDoc is the YAML shape printed by the export command.
type exportDoc struct {
	Title   string        `yaml:"title"`
	Palette model.Palette `yaml:"palette"`
	Tasks   []model.Task  `yaml:"tasks"`
	Ticks   []string      `yaml:"ticks"`
}

func newExport() exportDoc {
	ticks := layout.Ticks()
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		labels[i] = strings.ReplaceAll(t.Label, "\n", "/")
	}
	return exportDoc{
		Title:   roadmap.Title,
		Palette: roadmap.Palette(),
		Tasks:   roadmap.Tasks(),
		Ticks:   labels,
	}
}
