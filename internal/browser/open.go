package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Validate reports whether raw is an absolute http(s) URL that is safe to
// hand to the system opener.
func Validate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("browser: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("browser: refusing to open %q url", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("browser: url has no host")
	}
	return nil
}

// Open opens a product image or page in the user's default browser.
func Open(raw string) error {
	if err := Validate(raw); err != nil {
		return err
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", raw).Start()
	case "linux":
		return exec.Command("xdg-open", raw).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", raw).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
