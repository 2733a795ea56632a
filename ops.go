// +build linux

package iouring

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Lightweight operation values implementing EntryWriter. Each one sets
// only the entry fields its opcode uses; the slot has already been
// zeroed by PutEntry. No semantics are validated here, the kernel is
// the arbiter of what an opcode accepts.
//
// Buffers and iovecs referenced by an operation must be kept alive by
// the caller until the matching completion arrives.

// Nop submits a no-op. Its completion carries UserData back with a
// zero result.
type Nop struct {
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op Nop) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpNop
	sqe.Fd = -1
	sqe.UserData = op.UserData
}

// Read submits a read(2)-style operation into a single buffer.
type Read struct {
	Fd       int32
	Buf      []byte
	Offset   uint64
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op Read) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpRead
	sqe.Fd = op.Fd
	sqe.Addr = uint64(uintptr(unsafe.Pointer(&op.Buf[0])))
	sqe.Len = uint32(len(op.Buf))
	sqe.Offset = op.Offset
	sqe.UserData = op.UserData
}

// Write submits a write(2)-style operation from a single buffer.
type Write struct {
	Fd       int32
	Buf      []byte
	Offset   uint64
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op Write) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpWrite
	sqe.Fd = op.Fd
	sqe.Addr = uint64(uintptr(unsafe.Pointer(&op.Buf[0])))
	sqe.Len = uint32(len(op.Buf))
	sqe.Offset = op.Offset
	sqe.UserData = op.UserData
}

// ReadVector submits a readv(2)-style vectored read.
type ReadVector struct {
	Fd       int32
	Iovecs   []unix.Iovec
	Offset   uint64
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op ReadVector) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpReadv
	sqe.Fd = op.Fd
	sqe.Addr = uint64(uintptr(unsafe.Pointer(&op.Iovecs[0])))
	sqe.Len = uint32(len(op.Iovecs))
	sqe.Offset = op.Offset
	sqe.UserData = op.UserData
}

// WriteVector submits a writev(2)-style vectored write.
type WriteVector struct {
	Fd       int32
	Iovecs   []unix.Iovec
	Offset   uint64
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op WriteVector) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpWritev
	sqe.Fd = op.Fd
	sqe.Addr = uint64(uintptr(unsafe.Pointer(&op.Iovecs[0])))
	sqe.Len = uint32(len(op.Iovecs))
	sqe.Offset = op.Offset
	sqe.UserData = op.UserData
}

// ReadFixedOp submits a read into a slice of a registered fixed
// buffer. Buf must lie inside the buffer registered at BufIndex.
type ReadFixedOp struct {
	Fd       int32
	Buf      []byte
	BufIndex uint16
	Offset   uint64
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op ReadFixedOp) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpReadFixed
	sqe.Fd = op.Fd
	sqe.Addr = uint64(uintptr(unsafe.Pointer(&op.Buf[0])))
	sqe.Len = uint32(len(op.Buf))
	sqe.Offset = op.Offset
	sqe.BufIndex = op.BufIndex
	sqe.UserData = op.UserData
}

// WriteFixedOp submits a write from a slice of a registered fixed
// buffer. Buf must lie inside the buffer registered at BufIndex.
type WriteFixedOp struct {
	Fd       int32
	Buf      []byte
	BufIndex uint16
	Offset   uint64
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op WriteFixedOp) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpWriteFixed
	sqe.Fd = op.Fd
	sqe.Addr = uint64(uintptr(unsafe.Pointer(&op.Buf[0])))
	sqe.Len = uint32(len(op.Buf))
	sqe.Offset = op.Offset
	sqe.BufIndex = op.BufIndex
	sqe.UserData = op.UserData
}

// TimeoutOp submits a timeout. The completion result distinguishes
// TimeoutExpired from TimeoutByCount.
type TimeoutOp struct {
	Ts *KernelTimespec
	// Count completes the timeout after this many other completions,
	// if it happens before Ts runs out.
	Count    uint64
	Abs      bool
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op TimeoutOp) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpTimeout
	sqe.Fd = -1
	sqe.Addr = uint64(uintptr(unsafe.Pointer(op.Ts)))
	sqe.Len = 1
	sqe.Offset = op.Count
	if op.Abs {
		sqe.UFlags = TimeoutAbs
	}
	sqe.UserData = op.UserData
}

// TimeoutRemoveOp removes a pending timeout identified by the
// UserData tag it was submitted with.
type TimeoutRemoveOp struct {
	Target   uint64
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op TimeoutRemoveOp) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpTimeoutRemove
	sqe.Fd = -1
	sqe.Addr = op.Target
	sqe.UserData = op.UserData
}

// Cancel asks the kernel to cancel an in-flight operation identified
// by the UserData tag it was submitted with. Cancellation is
// cooperative: both the target's completion and this operation's own
// completion still arrive.
type Cancel struct {
	Target   uint64
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op Cancel) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpAsyncCancel
	sqe.Fd = -1
	sqe.Addr = op.Target
	sqe.UserData = op.UserData
}

// PollAddOp submits a one-shot poll on an fd with a poll(2) event
// mask.
type PollAddOp struct {
	Fd       int32
	Mask     uint32
	UserData uint64
}

// WriteEntry implements EntryWriter.
func (op PollAddOp) WriteEntry(sqe *SubmitEntry) {
	sqe.Opcode = OpPollAdd
	sqe.Fd = op.Fd
	sqe.UFlags = op.Mask
	sqe.UserData = op.UserData
}
