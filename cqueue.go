// +build linux

package iouring

import (
	"sync/atomic"
)

// CompletionQueue is the kernel-to-user ring: the kernel produces
// completion entries, this side consumes them. As with the submit
// ring, head and tail are free-running counters and slot addressing is
// mask based.
//
// A single consumer is assumed; concurrent consumers need external
// synchronization.
type CompletionQueue struct {
	ptr  uintptr
	size uint32

	khead      *uint32
	ktail      *uint32
	mask       *uint32
	numEntries *uint32
	overflow   *uint32

	// entries must never be resized, it is mmap'd.
	entries []CompletionEntry

	localHead uint32
}

// Size returns the number of entry slots in the ring.
func (q *CompletionQueue) Size() uint32 {
	return *q.numEntries
}

// Tail returns the kernel-owned tail counter. The load synchronizes
// with the kernel's publish of new completions.
func (q *CompletionQueue) Tail() uint32 {
	return atomic.LoadUint32(q.ktail)
}

// Length returns the number of completions waiting to be consumed.
func (q *CompletionQueue) Length() uint32 {
	return q.Tail() - q.localHead
}

// Empty returns true when no completion is waiting.
func (q *CompletionQueue) Empty() bool {
	return q.Length() == 0
}

// Front returns a copy of the oldest unconsumed completion without
// consuming it. It panics if the ring is empty.
func (q *CompletionQueue) Front() CompletionEntry {
	if q.Empty() {
		panic("iouring: front of empty completion queue")
	}
	return q.entries[q.localHead&*q.mask]
}

// PopFront consumes the oldest completion and publishes the new head
// to the kernel so the slot can be reused. Prompt publishing matters:
// the kernel uses the head to decide how much free space remains
// before it has to overflow. Panics if the ring is empty.
func (q *CompletionQueue) PopFront() {
	if q.Empty() {
		panic("iouring: pop of empty completion queue")
	}
	q.localHead++
	atomic.StoreUint32(q.khead, q.localHead)
}

// Overflow returns the kernel counter of completions dropped because
// the ring was full when the kernel tried to post them. Monotonic;
// never reset.
func (q *CompletionQueue) Overflow() uint32 {
	return atomic.LoadUint32(q.overflow)
}

// Drain returns an iterator that consumes the ring. The iterator is
// lazy, finite, and not restartable: each Next consumes one entry, and
// completions arriving while iterating may or may not be observed.
func (q *CompletionQueue) Drain() *CompletionIter {
	return &CompletionIter{q: q}
}

// CompletionIter iterates over completion entries, consuming them as
// a side effect of advancing.
type CompletionIter struct {
	q   *CompletionQueue
	cur CompletionEntry
}

// Next consumes the next completion, returning false once the ring is
// empty.
func (it *CompletionIter) Next() bool {
	if it.q.Empty() {
		return false
	}
	it.cur = it.q.Front()
	it.q.PopFront()
	return true
}

// Entry returns the completion consumed by the last call to Next.
func (it *CompletionIter) Entry() CompletionEntry {
	return it.cur
}
