// Package opener shows a file in the host's default viewer, trying each
// platform mechanism in order until one succeeds.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/devbush/autoedit/internal/domain"
	"github.com/devbush/autoedit/internal/ports"
)

// Attempt is one way of opening a file
type Attempt struct {
	Name string
	Args func(path string) []string
}

// Chain implements ports.Opener over an ordered list of attempts
type Chain struct {
	attempts []Attempt
	run      func(name string, args ...string) error
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// New returns the chain for the current platform
func New() *Chain {
	return NewChain(PlatformAttempts(runtime.GOOS), runCommand)
}

// NewChain builds a chain with a custom command runner
func NewChain(attempts []Attempt, run func(name string, args ...string) error) *Chain {
	return &Chain{attempts: attempts, run: run}
}

// PlatformAttempts lists the open mechanisms for goos, most specific first.
// Linux also tries cmd.exe so WSL hands the file to the Windows host.
func PlatformAttempts(goos string) []Attempt {
	switch goos {
	case "windows":
		return []Attempt{
			{Name: "cmd", Args: func(p string) []string { return []string{"/C", "start", "", p} }},
			{Name: "rundll32", Args: func(p string) []string { return []string{"url.dll,FileProtocolHandler", p} }},
		}
	case "darwin":
		return []Attempt{
			{Name: "open", Args: func(p string) []string { return []string{p} }},
		}
	default:
		return []Attempt{
			{Name: "xdg-open", Args: func(p string) []string { return []string{p} }},
			{Name: "open", Args: func(p string) []string { return []string{p} }},
			{Name: "cmd.exe", Args: func(p string) []string { return []string{"/C", "start", p} }},
		}
	}
}

// Open stops at the first attempt that succeeds. When all fail the error
// wraps domain.ErrOpenFailure and names every attempt.
func (c *Chain) Open(path string) error {
	var tried []string
	for _, a := range c.attempts {
		if err := c.run(a.Name, a.Args(path)...); err == nil {
			return nil
		}
		tried = append(tried, a.Name)
	}
	return fmt.Errorf("%w: %s (tried %s)", domain.ErrOpenFailure, path, strings.Join(tried, ", "))
}

var _ ports.Opener = (*Chain)(nil)
