// +build linux

package iouring

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// sigsetSize is _NSIG/8; the kernel rejects a non-NULL signal mask
// whose size argument differs from it.
const sigsetSize = 8

// Enter is used to enter the ring with the io_uring_enter syscall. It
// returns the number of entries the kernel consumed. A non-nil sigset
// is applied atomically for the duration of the call, so a blocked
// wait can be interrupted (surfacing as EINTR) and retried by the
// caller.
func Enter(fd int, toSubmit uint, minComplete uint, flags uint, sigset *unix.Sigset_t) (int, error) {
	var sigsz uintptr
	if sigset != nil {
		sigsz = sigsetSize
	}
	res, _, errno := syscall.Syscall6(
		EnterSyscall,
		uintptr(fd),
		uintptr(toSubmit),
		uintptr(minComplete),
		uintptr(flags),
		uintptr(unsafe.Pointer(sigset)),
		sigsz,
	)
	if errno != 0 {
		return 0, errno
	}
	if int(res) < 0 {
		return 0, syscall.Errno(-int(res))
	}
	return int(res), nil
}
