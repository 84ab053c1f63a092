package chart

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ErrNoDisplay is returned when there is no screen to show the chart on
var ErrNoDisplay = errors.New("no display available")

// Display opens the image in the desktop's default viewer without waiting for it
func Display(path string) error {
	name, args, err := viewerCommand(path)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go cmd.Wait()
	return nil
}

func viewerCommand(path string) (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	default:
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return "", nil, ErrNoDisplay
		}
		return "xdg-open", []string{path}, nil
	}
}
