//go:build !unix

package runner

import "os/exec"

// configureProcessGroup is a no-op; exec.CommandContext kills the direct child.
func configureProcessGroup(*exec.Cmd) {}
