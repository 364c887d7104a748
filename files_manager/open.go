package files_manager

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommand picks the host's file browser launcher.
func browserCommand(goos, dir string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{dir}
	case "darwin":
		return "open", []string{dir}
	default:
		return "xdg-open", []string{dir}
	}
}

// OpenInFileBrowser starts the platform file browser on dir without waiting.
func OpenInFileBrowser(dir string) error {
	name, args := browserCommand(runtime.GOOS, dir)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", dir, err)
	}
	go cmd.Wait()
	return nil
}
