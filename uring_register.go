// +build linux

package iouring

import (
	"syscall"
	"unsafe"
)

// Register is used to issue an io_uring_register syscall against the
// ring fd. The interpretation of arg and nrArgs depends on the
// register opcode; higher level registration helpers build on this.
func Register(fd int, opcode uint, arg unsafe.Pointer, nrArgs uint) error {
	_, _, errno := syscall.Syscall6(
		RegisterSyscall,
		uintptr(fd),
		uintptr(opcode),
		uintptr(arg),
		uintptr(nrArgs),
		uintptr(0),
		uintptr(0),
	)
	if errno != 0 {
		return errno
	}
	return nil
}
