package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/roadmap/internal/chart"
)

// --- Test Setup ---

// executeCommandText captures plain text output from a command.
func executeCommandText(t *testing.T, args ...string) string {
	t.Helper()
	b := new(bytes.Buffer)

	// Set the command's output to our buffer
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)

	// Reset flags to default values before each run
	renderCmd.Flags().Set("output", "")
	renderCmd.Flags().Set("format", "png")
	renderCmd.Flags().Set("width", "14in")
	renderCmd.Flags().Set("height", "8in")
	renderCmd.Flags().Set("open", "false")
	renderCmd.Flags().Lookup("format").Changed = false
	previewCmd.Flags().Set("color", "auto")
	previewCmd.Flags().Set("cell-width", "4")

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	return b.String()
}

func quietLogs(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
}

// --- Test Functions ---

func TestPreviewCommand(t *testing.T) {
	t.Run("prints the chart as text", func(t *testing.T) {
		output := executeCommandText(t, "preview", "--color", "never")

		if !strings.HasPrefix(output, "FL-IDS Research Timeline: 4-Year Roadmap\n") {
			t.Errorf("Preview missing title, got:\n%s", output)
		}
		for _, label := range []string{"Literature Review", "Thesis Writing & Dissemination", "End", "Slack / Buffer"} {
			if !strings.Contains(output, label) {
				t.Errorf("Preview missing %q", label)
			}
		}
		if strings.Contains(output, "\x1b[") {
			t.Error("Preview with --color never contains escape codes")
		}
	})

	t.Run("honours the cell width", func(t *testing.T) {
		output := executeCommandText(t, "preview", "--color", "never", "--cell-width", "6")
		for _, line := range strings.Split(output, "\n") {
			if strings.HasPrefix(line, "Q1") {
				if idx := strings.Index(line, "End"); idx != 16*6 {
					t.Errorf("Expected End at column %d, got %d", 16*6, idx)
				}
				return
			}
		}
		t.Error("Preview missing quarter ruler")
	})
}

func TestExportCommand(t *testing.T) {
	output := executeCommandText(t, "export")

	var doc exportDoc
	if err := yaml.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("Export is not valid YAML: %v\n%s", err, output)
	}
	if len(doc.Tasks) != 13 {
		t.Errorf("Expected 13 tasks, got %d", len(doc.Tasks))
	}
	if doc.Tasks[0].Label != "Literature Review" {
		t.Errorf("Expected first task 'Literature Review', got %q", doc.Tasks[0].Label)
	}
	if len(doc.Ticks) != 17 || doc.Ticks[0] != "Q1/Y1" || doc.Ticks[16] != "End" {
		t.Errorf("Unexpected ticks: %v", doc.Ticks)
	}
	if doc.Palette.Slack != "#E5E5E5" {
		t.Errorf("Unexpected slack color %q", doc.Palette.Slack)
	}
}

func TestRenderCommand(t *testing.T) {
	quietLogs(t)

	t.Run("writes an svg file inferred from the extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roadmap.svg")
		output := executeCommandText(t, "render", "--output", path)

		if output != "Wrote "+path+"\n" {
			t.Errorf("Unexpected output %q", output)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Chart not written: %v", err)
		}
		if !bytes.Contains(data, []byte("<svg")) {
			t.Error("Output file is not an SVG")
		}
	})

	t.Run("writes png to stdout when not a terminal", func(t *testing.T) {
		output := executeCommandText(t, "render", "--width", "4in", "--height", "3in")
		if !strings.HasPrefix(output, "\x89PNG") {
			t.Errorf("Expected PNG on stdout, got %d bytes", len(output))
		}
	})

	t.Run("explicit format wins over extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roadmap.img")
		executeCommandText(t, "render", "--output", path, "--format", "svg")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Chart not written: %v", err)
		}
		if !bytes.Contains(data, []byte("<svg")) {
			t.Error("Output file is not an SVG")
		}
	})
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		explicit bool
		flag     chart.Format
		path     string
		want     chart.Format
		wantErr  bool
	}{
		{"stdout uses flag", false, chart.FormatPNG, "-", chart.FormatPNG, false},
		{"no path uses flag", false, chart.FormatSVG, "", chart.FormatSVG, false},
		{"extension", false, chart.FormatPNG, "out.svg", chart.FormatSVG, false},
		{"explicit beats extension", true, chart.FormatPNG, "out.svg", chart.FormatPNG, false},
		{"pdf is not offered", false, chart.FormatPNG, "out.pdf", "", true},
		{"unknown extension", false, chart.FormatPNG, "out.gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.explicit, tt.flag, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteChart(t *testing.T) {
	l, err := buildLayout()
	if err != nil {
		t.Fatalf("buildLayout() error = %v", err)
	}

	t.Run("removes the file when rendering fails", func(t *testing.T) {
		quietLogs(t)
		path := filepath.Join(t.TempDir(), "roadmap.pdf")
		if err := writeChart(path, l, chart.Options{Format: "pdf"}); err == nil {
			t.Fatal("Expected an error for an unsupported format")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be removed, stat error = %v", path, err)
		}
	})

	t.Run("keeps the file on success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roadmap.svg")
		if err := writeChart(path, l, chart.Options{Format: chart.FormatSVG}); err != nil {
			t.Fatalf("writeChart() error = %v", err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("Expected a non-empty chart at %s, stat error = %v", path, err)
		}
	})
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(new(bytes.Buffer)) {
		t.Error("A buffer is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer f.Close()
	if isTerminal(f) {
		t.Error("A regular file is not a terminal")
	}
}

func TestFlagValues(t *testing.T) {
	var l lengthValue
	if err := l.Set("0in"); err == nil {
		t.Error("Expected zero length to be rejected")
	}
	if err := l.Set("wide"); err == nil {
		t.Error("Expected malformed length to be rejected")
	}

	var f formatValue
	for _, bad := range []string{"bmp", "pdf"} {
		if err := f.Set(bad); err == nil {
			t.Errorf("Expected %s format to be rejected", bad)
		}
	}

	var c colorValue
	if err := c.Set("rainbow"); err == nil {
		t.Error("Expected unknown color mode to be rejected")
	}
}
