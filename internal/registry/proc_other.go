//go:build !unix

package registry

import "os/exec"

// killGroupOnCancel keeps the default cancellation; WaitDelay still bounds the call.
func killGroupOnCancel(*exec.Cmd) {}
