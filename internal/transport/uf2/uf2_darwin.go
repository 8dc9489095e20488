//go:build darwin

package uf2

import "os/exec"

// unmount shells out to diskutil: macOS has no public unmount syscall
// binding in the standard library's syscall package.
func unmount(mountpoint string) error {
	return exec.Command("diskutil", "unmount", mountpoint).Run()
}
