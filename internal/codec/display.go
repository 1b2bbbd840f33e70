package codec

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/pixelforge/imgarray/internal/pixel"
)

// Display hands an image to the platform's default viewer.
//
// The image is written to a temporary PNG file which is left in place
// for the viewer process; the operating system's temp cleanup reclaims
// it. The viewer is launched asynchronously and its exit status is not
// observed.
func Display(im *pixel.TaggedImage) error {
	f, err := os.CreateTemp("", "imgarray-*.png")
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	if err := Save(im, f.Name(), "png"); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finalize preview file: %w", err)
	}

	cmd := viewerCommand(f.Name())
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch image viewer: %w", err)
	}
	return nil
}

func viewerCommand(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
