// Package browser opens catalog image URLs with the operating system's default handler.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"scentquiz/internal/ports"
)

// ErrUnsupportedURL is returned for anything but an absolute http(s) URL
var ErrUnsupportedURL = errors.New("unsupported url")

var _ ports.URLOpener = (*Opener)(nil)

// Opener implements ports.URLOpener
type Opener struct {
	goos string
}

// NewOpener creates an opener for the current operating system
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS}
}

// Open launches the default browser on rawURL
func (o *Opener) Open(rawURL string) error {
	cmd, err := o.Command(rawURL)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command builds the platform command that opens rawURL without running it
func (o *Opener) Command(rawURL string) (*exec.Cmd, error) {
	u, err := Validate(rawURL)
	if err != nil {
		return nil, err
	}
	target := u.String()

	switch o.goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}

// Validate parses rawURL and accepts only absolute http and https URLs, so a
// catalog entry cannot launch local files or other handlers
func Validate(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}
	return u, nil
}
