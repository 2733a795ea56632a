// +build linux

package iouring

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// filesUpdate mirrors struct io_uring_files_update.
type filesUpdate struct {
	Offset uint32
	resv   uint32
	Fds    uint64
}

// Probe mirrors struct io_uring_probe and reports which opcodes the
// running kernel supports.
type Probe struct {
	LastOp uint8
	OpsLen uint8
	resv   uint16
	resv2  [3]uint32
	Ops    [256]ProbeOp
}

// ProbeOp is one probed opcode.
type ProbeOp struct {
	Op    uint8
	resv  uint8
	Flags uint16
	resv2 uint32
}

// probeOpSupported is set in ProbeOp.Flags for supported opcodes.
const probeOpSupported uint16 = 1 << 0

// Supported reports whether the probed kernel supports op.
func (p *Probe) Supported(op Opcode) bool {
	if uint8(op) > p.LastOp {
		return false
	}
	return p.Ops[op].Flags&probeOpSupported != 0
}

// RegisterBuffers registers a fixed buffer set for ReadFixed and
// WriteFixed operations. The iovec table is copied and pinned until
// UnregisterBuffers or teardown; registering while a set is active
// fails with ErrBuffersRegistered.
func (r *Ring) RegisterBuffers(iovecs []unix.Iovec) error {
	if r.bufs != nil {
		return ErrBuffersRegistered
	}
	if len(iovecs) == 0 {
		return syscall.EINVAL
	}
	bufs := make([]unix.Iovec, len(iovecs))
	copy(bufs, iovecs)
	if err := Register(r.fd, RegRegisterBuffers, unsafe.Pointer(&bufs[0]), uint(len(bufs))); err != nil {
		return err
	}
	r.bufs = bufs
	return nil
}

// UnregisterBuffers releases the registered fixed buffer set. It fails
// with ErrNoBuffersRegistered if none is active.
func (r *Ring) UnregisterBuffers() error {
	if r.bufs == nil {
		return ErrNoBuffersRegistered
	}
	if err := Register(r.fd, RegUnregisterBuffers, nil, 0); err != nil {
		return err
	}
	r.bufs = nil
	return nil
}

// RegisterFiles registers a fixed file set, allowing entries to refer
// to files by index with SqeFixedFile.
func (r *Ring) RegisterFiles(fds []int32) error {
	if len(fds) == 0 {
		return syscall.EINVAL
	}
	return Register(r.fd, RegRegisterFiles, unsafe.Pointer(&fds[0]), uint(len(fds)))
}

// UnregisterFiles releases the registered file set.
func (r *Ring) UnregisterFiles() error {
	return Register(r.fd, RegUnregisterFiles, nil, 0)
}

// RegisterFilesUpdate replaces a range of the registered file set
// starting at off with fds. An fd of -1 clears the slot.
func (r *Ring) RegisterFilesUpdate(off uint32, fds []int32) error {
	if len(fds) == 0 {
		return syscall.EINVAL
	}
	up := filesUpdate{
		Offset: off,
		Fds:    uint64(uintptr(unsafe.Pointer(&fds[0]))),
	}
	return Register(r.fd, RegRegisterFilesUpdate, unsafe.Pointer(&up), uint(len(fds)))
}

// RegisterEventFd registers an eventfd that the kernel signals for
// every posted completion.
func (r *Ring) RegisterEventFd(fd int) error {
	ev := int32(fd)
	return Register(r.fd, RegRegisterEventFd, unsafe.Pointer(&ev), 1)
}

// RegisterEventFdAsync is like RegisterEventFd but only completions of
// requests that actually went async signal the eventfd.
func (r *Ring) RegisterEventFdAsync(fd int) error {
	ev := int32(fd)
	return Register(r.fd, RegRegisterEventFdAsync, unsafe.Pointer(&ev), 1)
}

// UnregisterEventFd removes a registered eventfd.
func (r *Ring) UnregisterEventFd() error {
	return Register(r.fd, RegUnregisterEventFd, nil, 0)
}

// RegisterProbe asks the kernel which opcodes it supports.
func (r *Ring) RegisterProbe() (*Probe, error) {
	probe := &Probe{}
	if err := Register(r.fd, RegRegisterProbe, unsafe.Pointer(probe), uint(len(probe.Ops))); err != nil {
		return nil, err
	}
	return probe, nil
}
