// +build linux

package iouring

import (
	"sync/atomic"
)

// SubmitQueue is the user-to-kernel ring: this side produces entries,
// the kernel consumes them. Head and tail are free-running 32 bit
// counters; they are never reset and wraparound is handled entirely by
// masking, so slot addressing stays valid past 2^32 submissions.
//
// The queue caches a local tail so several entries can be queued before
// one publish. Nothing here is kernel visible until FlushTail runs.
// A single producer is assumed; concurrent producers need external
// synchronization.
type SubmitQueue struct {
	ptr  uintptr
	size uint32

	khead      *uint32
	ktail      *uint32
	mask       *uint32
	numEntries *uint32
	kflags     *uint32
	dropped    *uint32

	// array is the index indirection array. It is set to the identity
	// permutation once at mmap time and never written again, so ring
	// indices address sqe slots directly after masking.
	array []uint32

	// entries must never be resized, it is mmap'd.
	entries []SubmitEntry
	// sqesPtr/sqesSize describe the separate sqe array mapping, kept
	// for munmap.
	sqesPtr  uintptr
	sqesSize uint32

	localTail uint32
}

// Size returns the number of entry slots in the ring.
func (q *SubmitQueue) Size() uint32 {
	return *q.numEntries
}

// Head returns the kernel-owned head counter. The kernel advances it
// concurrently as it consumes entries, so the load synchronizes with
// the kernel's publish.
func (q *SubmitQueue) Head() uint32 {
	return atomic.LoadUint32(q.khead)
}

// Length returns the number of queued but unconsumed entries,
// including entries not yet published with FlushTail.
func (q *SubmitQueue) Length() uint32 {
	return q.localTail - q.Head()
}

// Full returns true when no slot is free.
func (q *SubmitQueue) Full() bool {
	return q.Length() == q.Size()
}

// Space returns the number of free slots.
func (q *SubmitQueue) Space() uint32 {
	return q.Size() - q.Length()
}

// Put queues a copy of e. It panics if the ring is full; queuing past
// capacity would silently overwrite entries the kernel has not
// consumed yet. The kernel does not observe the entry until FlushTail.
func (q *SubmitQueue) Put(e SubmitEntry) {
	if q.Full() {
		panic("iouring: put on full submit queue")
	}
	q.entries[q.localTail&*q.mask] = e
	q.localTail++
}

// PutEntry queues an entry described by a lightweight operation value.
// The target slot is zeroed first, then the writer fills in only the
// fields its operation uses. Panics if the ring is full.
func (q *SubmitQueue) PutEntry(w EntryWriter) {
	if q.Full() {
		panic("iouring: put on full submit queue")
	}
	sqe := &q.entries[q.localTail&*q.mask]
	*sqe = SubmitEntry{}
	w.WriteEntry(sqe)
	q.localTail++
}

// FlushTail publishes the local tail to the kernel-visible tail. The
// store is the release barrier that makes every queued entry visible
// to the kernel; it must happen before io_uring_enter for the kernel
// to see the new work.
func (q *SubmitQueue) FlushTail() {
	atomic.StoreUint32(q.ktail, q.localTail)
}

// Flags returns the kernel-maintained ring flags. Advisory only: the
// value can change under the reader and is re-checked on every submit.
func (q *SubmitQueue) Flags() uint32 {
	return atomic.LoadUint32(q.kflags)
}

// NeedWakeup reports whether the kernel SQ poll thread has gone to
// sleep and needs an explicit EnterSqWakeup.
func (q *SubmitQueue) NeedWakeup() bool {
	return q.Flags()&SqNeedWakeup != 0
}

// Dropped returns the kernel counter of submissions rejected for an
// out-of-bounds index. Monotonic; never reset.
func (q *SubmitQueue) Dropped() uint32 {
	return atomic.LoadUint32(q.dropped)
}
