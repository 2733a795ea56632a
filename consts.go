// +build linux

package iouring

// See uapi/linux/io_uring.h

// Opcode is an opcode for a submit queue entry.
type Opcode uint8

const (
	// SetupSyscall defines the syscall number for io_uring_setup.
	SetupSyscall = 425
	// EnterSyscall defines the syscall number for io_uring_enter.
	EnterSyscall = 426
	// RegisterSyscall defines the syscall number for io_uring_register.
	RegisterSyscall = 427
)

const (
	/*
	 * io_uring_setup() flags
	 */

	// SetupIOPoll io_context is polled
	SetupIOPoll uint32 = (1 << 0)
	// SetupSQPoll kernel SQ poll thread
	SetupSQPoll uint32 = (1 << 1)
	// SetupSQAff sq_thread_cpu is valid
	SetupSQAff uint32 = (1 << 2)
	// SetupCQSize app defines CQ size
	SetupCQSize uint32 = (1 << 3)
	// SetupClamp clamps SQ/CQ ring sizes
	SetupClamp uint32 = (1 << 4)
	// SetupAttachWQ attaches to an existing wq
	SetupAttachWQ uint32 = (1 << 5)

	/*
	 * sqe->flags
	 */

	// SqeFixedFile uses a fixed fileset
	SqeFixedFile uint8 = (1 << 0)
	// SqeIODrain issues after inflight IO
	SqeIODrain uint8 = (1 << 1)
	// SqeIOLink links to the next sqe
	SqeIOLink uint8 = (1 << 2)
	// SqeIOHardlink is a link that does not sever on completion
	SqeIOHardlink uint8 = (1 << 3)
	// SqeAsync always issues async
	SqeAsync uint8 = (1 << 4)
	// SqeBufferSelect selects a buffer from a registered group
	SqeBufferSelect uint8 = (1 << 5)

	/*
	 * sqe->fsync_flags
	 */

	// FsyncDatasync is fdatasync(2) semantics
	FsyncDatasync uint32 = (1 << 0)

	/*
	 * sqe->timeout_flags
	 */

	// TimeoutAbs is an absolute rather than relative timeout
	TimeoutAbs uint32 = (1 << 0)

	/*
	 * Magic offsets for the application to mmap the data it needs
	 */

	// SqRingOffset is the mmap offset of the submit queue ring.
	SqRingOffset uint64 = 0
	// CqRingOffset is the mmap offset of the completion queue ring.
	CqRingOffset uint64 = 0x8000000
	// SqesOffset is the mmap offset of the submit queue entry array.
	SqesOffset uint64 = 0x10000000

	/*
	 * sq_ring->flags
	 */

	// SqNeedWakeup indicates that the kernel SQ thread needs an
	// io_uring_enter wakeup.
	SqNeedWakeup uint32 = (1 << 0)
	// SqCqOverflow indicates the CQ ring is overflown.
	SqCqOverflow uint32 = (1 << 1)

	/*
	 * io_uring_enter(2) flags
	 */

	// EnterGetEvents waits for completion events.
	EnterGetEvents uint = (1 << 0)
	// EnterSqWakeup wakes up the kernel SQ poll thread.
	EnterSqWakeup uint = (1 << 1)

	/*
	 * io_uring_params->features flags
	 */

	// FeatSingleMmap means the SQ and CQ rings share one mapping.
	FeatSingleMmap uint32 = (1 << 0)
	// FeatNoDrop means completions are never dropped.
	FeatNoDrop uint32 = (1 << 1)
	// FeatSubmitStable means sqe data is stable once submitted.
	FeatSubmitStable uint32 = (1 << 2)
	// FeatRWCurPos allows read/write at the current file position.
	FeatRWCurPos uint32 = (1 << 3)
	// FeatCurPersonality uses the credentials of the entering task.
	FeatCurPersonality uint32 = (1 << 4)
	// FeatFastPoll supports internal poll retry.
	FeatFastPoll uint32 = (1 << 5)

	/*
	 * io_uring_register(2) opcodes
	 */

	RegRegisterBuffers      uint = 0
	RegUnregisterBuffers    uint = 1
	RegRegisterFiles        uint = 2
	RegUnregisterFiles      uint = 3
	RegRegisterEventFd      uint = 4
	RegUnregisterEventFd    uint = 5
	RegRegisterFilesUpdate  uint = 6
	RegRegisterEventFdAsync uint = 7
	RegRegisterProbe        uint = 8
)

const (
	// OpNop is a no-op.
	OpNop Opcode = iota
	OpReadv
	OpWritev
	OpFsync
	OpReadFixed
	OpWriteFixed
	OpPollAdd
	OpPollRemove
	OpSyncFileRange
	OpSendmsg
	OpRecvmsg
	OpTimeout
	OpTimeoutRemove
	OpAccept
	OpAsyncCancel
	OpLinkTimeout
	OpConnect
	OpFallocate
	OpOpenat
	OpClose
	OpFilesUpdate
	OpStatx
	OpRead
	OpWrite
	OpFadvise
	OpMadvise
	OpSend
	OpRecv
	OpOpenat2
	OpEpollCtl
	OpSplice
	OpProvideBuffers
	OpRemoveBuffers
	OpTee
)

// Timeout completions report how the timeout resolved in the CQE result.
const (
	// TimeoutExpired means the timer ran out.
	TimeoutExpired = 0
	// TimeoutByCount means the completion count was reached first.
	TimeoutByCount = 1
)

// Async cancel completions report how the target was resolved.
const (
	// CancelDone means the target request was canceled.
	CancelDone = 0
	// CancelMaybe means the target may complete regardless.
	CancelMaybe = 1
)
