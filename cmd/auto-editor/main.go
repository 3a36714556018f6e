// Command auto-editor removes the silent parts of video and audio files.
package main

import "github.com/devbush/autoedit/internal/adapters/cli"

// version is set at build time via -ldflags "-X main.version=..."
var version = "20w31a"

func main() {
	cli.Execute(version)
}
