// Package viewer presents a written chart file in the platform's default
// image viewer.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var (
	// ErrUnsupportedPlatform is returned on an OS with no known viewer launcher.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrNoViewer is returned when none of the platform's launchers are installed.
	ErrNoViewer = errors.New("no suitable viewer found")
)

// Open launches the default viewer for path and waits for the launcher to
// hand the file off.
func Open(ctx context.Context, path string) error {
	args, err := command(runtime.GOOS, path, isCommandAvailable)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("could not open %s with %s: %w", path, args[0], err)
	}
	return nil
}

// command picks the launcher for goos, trying each candidate in order of
// preference.
func command(goos, path string, available func(string) bool) ([]string, error) {
	var candidates [][]string
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		candidates = [][]string{
			{"xdg-open", path},
			{"gio", "open", path},
		}
	case "darwin":
		candidates = [][]string{{"open", path}}
	case "windows":
		candidates = [][]string{{"cmd", "/c", "start", "", path}}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}

	for _, c := range candidates {
		if available(c[0]) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w (tried: %s)", ErrNoViewer, names(candidates))
}

func names(candidates [][]string) string {
	tools := make([]string, len(candidates))
	for i, c := range candidates {
		tools[i] = c[0]
	}
	return strings.Join(tools, ", ")
}

func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
