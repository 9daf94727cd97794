//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to every process in the group led by pid.
// Chrome spawns renderer and GPU helpers that outlive the parent otherwise.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// launcher.Kill() runs afterwards, so a failure here is not fatal.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
