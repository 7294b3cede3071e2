//go:build !unix

package invoke

import "os/exec"

// setProcessGroup is a no-op where process groups are unavailable;
// CommandContext's default kill of the direct child applies.
func setProcessGroup(cmd *exec.Cmd) {}
