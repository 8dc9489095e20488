//go:build linux

package uf2

import "syscall"

// unmount detaches the UF2 volume so the host doesn't write to it
// mid-reset. Mirrors the platform split the teacher project used for
// its own USB build (usb_device.go / usb_device_mips.go): one file per
// OS rather than runtime branching inside a shared function.
func unmount(mountpoint string) error {
	return syscall.Unmount(mountpoint, 0)
}
