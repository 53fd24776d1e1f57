package viz

import (
	"os/exec"
	"runtime"
)

// OpenFunc hands a video reference to an external player.
type OpenFunc func(ref string) error

// SystemOpen launches the platform's default handler for ref and returns
// without waiting for the player to exit.
func SystemOpen(ref string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", ref)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", ref)
	default:
		cmd = exec.Command("xdg-open", ref)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
