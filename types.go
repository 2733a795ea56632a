// +build linux

package iouring

import "syscall"

// Params are used to configure an io_uring. The kernel fills in the
// geometry, feature, and offset fields during setup; they must be
// treated as read-only afterwards.
type Params struct {
	SqEntries    uint32
	CqEntries    uint32
	Flags        uint32
	SqThreadCPU  uint32
	SqThreadIdle uint32
	Features     uint32
	WqFd         uint32
	Resv         [3]uint32
	SqOffset     SQRingOffset
	CqOffset     CQRingOffset
}

// SQRingOffset describes the submit queue ring sub-field offsets.
type SQRingOffset struct {
	Head        uint32
	Tail        uint32
	RingMask    uint32
	RingEntries uint32
	Flags       uint32
	Dropped     uint32
	Array       uint32
	Resv1       uint32
	Resv2       uint64
}

// CQRingOffset describes the completion queue ring sub-field offsets.
type CQRingOffset struct {
	Head        uint32
	Tail        uint32
	RingMask    uint32
	RingEntries uint32
	Overflow    uint32
	Cqes        uint32
	Flags       uint32
	Resv1       uint32
	Resv2       uint64
}

// SubmitEntry is an IO submission data structure (Submission Queue
// Entry). The layout mirrors struct io_uring_sqe and is 64 bytes.
// An entry is mutable until it is published with FlushTail; after that
// the slot belongs to the kernel until the head passes it.
type SubmitEntry struct {
	Opcode      Opcode /* type of operation for this sqe */
	Flags       uint8  /* IOSQE_ flags */
	Ioprio      uint16 /* ioprio for the request */
	Fd          int32  /* file descriptor to do IO on */
	Offset      uint64 /* offset into file */
	Addr        uint64 /* pointer to buffer or iovecs */
	Len         uint32 /* buffer size or number of iovecs */
	UFlags      uint32 /* union of per-operation flags */
	UserData    uint64 /* data to be passed back at completion time */
	BufIndex    uint16 /* index into fixed buffers, if used */
	Personality uint16 /* personality to use, if used */
	SpliceFdIn  int32  /* fd for splice(2) input */
	pad         [2]uint64
}

// EntryWriter fills in a submit queue entry. Implementations are
// lightweight per-operation values; PutEntry hands them a zeroed slot
// so a writer only sets the fields its operation uses.
type EntryWriter interface {
	WriteEntry(sqe *SubmitEntry)
}

// CompletionEntry is an IO completion data structure (Completion Queue
// Entry). Res is non-negative on success (usually a byte count) and a
// negated errno on failure; its meaning beyond that is operation
// specific and is passed through uninterpreted.
type CompletionEntry struct {
	UserData uint64 /* sqe->user_data echoed back */
	Res      int32  /* result code for this event */
	Flags    uint32
}

// Err returns the CQE result as an error, or nil if the operation
// succeeded.
func (c CompletionEntry) Err() error {
	if c.Res < 0 {
		return syscall.Errno(-c.Res)
	}
	return nil
}

// KernelTimespec is a kernel timespec.
type KernelTimespec struct {
	Sec  int64
	Nsec int64
}
