// +build linux

package iouring

import (
	"syscall"
	"unsafe"
)

// Setup is used to setup an io_uring using the io_uring_setup syscall.
// The kernel fills the geometry, offset, and feature fields of params;
// the returned file descriptor refers to the new ring.
func Setup(entries uint, params *Params) (int, error) {
	fd, _, errno := syscall.Syscall(
		SetupSyscall,
		uintptr(entries),
		uintptr(unsafe.Pointer(params)),
		uintptr(0),
	)
	if errno != 0 {
		return 0, errno
	}
	return int(fd), nil
}
