package service

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenFile opens path with the platform's default viewer
func OpenFile(path string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin": // macOS
		cmd = "open"
		args = []string{path}
	case "linux":
		// Try different commands in order of preference
		for _, openCmd := range []string{"xdg-open", "gnome-open", "kde-open"} {
			if _, err := exec.LookPath(openCmd); err == nil {
				cmd = openCmd
				args = []string{path}
				break
			}
		}
		if cmd == "" {
			return fmt.Errorf("no suitable file opener found for Linux")
		}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", "", path}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	// Start, not Run: the viewer outlives the export
	if err := exec.Command(cmd, args...).Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	return nil
}
