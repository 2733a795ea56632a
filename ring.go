// +build linux

package iouring

import (
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// Ring owns an io_uring fd, its two mapped rings, and any kernel-side
// registrations tied to it. A Ring is shared by reference counting:
// Ref hands out another reference to the same underlying ring, and
// every reference must be matched by a Close. The teardown sequence
// runs exactly once, when the last reference is dropped.
//
// A Ring must not be driven from multiple goroutines without external
// synchronization: the protocol assumes one producer advancing the
// submit tail and one consumer advancing the completion head.
type Ring struct {
	fd int
	p  *Params
	sq *SubmitQueue
	cq *CompletionQueue

	refs *int32
	idx  *uint64

	eventFd int
	// bufs pins the iovec table handed to the kernel by
	// RegisterBuffers until unregistration or teardown.
	bufs []unix.Iovec
}

// New is used to create an io_uring. A nil p requests default
// parameters; otherwise the setup flags and sizing fields of p are
// passed through to the kernel.
func New(entries uint, p *Params, opts ...RingOption) (*Ring, error) {
	params := Params{}
	if p != nil {
		params = *p
	}
	fd, err := Setup(entries, &params)
	if err != nil {
		return nil, err
	}
	var (
		sq SubmitQueue
		cq CompletionQueue
	)
	if err := MmapRing(fd, &params, &sq, &cq); err != nil {
		syscall.Close(fd)
		return nil, err
	}
	refs := int32(1)
	idx := uint64(0)
	r := &Ring{
		fd:      fd,
		p:       &params,
		sq:      &sq,
		cq:      &cq,
		refs:    &refs,
		idx:     &idx,
		eventFd: -1,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Close()
			return nil, err
		}
	}
	return r, nil
}

// Ref takes an additional reference to the ring. The returned handle
// is the same underlying ring; releasing it with Close does not tear
// the ring down while other references remain.
func (r *Ring) Ref() *Ring {
	if atomic.AddInt32(r.refs, 1) <= 1 {
		panic("iouring: ref of released ring")
	}
	return r
}

// Close drops one reference. When the last reference is dropped the
// registered buffer table is released, the mappings are unmapped, and
// the fd is closed; each step is a no-op for resources that were never
// acquired. Closing more times than the ring was referenced panics.
func (r *Ring) Close() error {
	n := atomic.AddInt32(r.refs, -1)
	if n > 0 {
		return nil
	}
	if n < 0 {
		panic("iouring: close of released ring")
	}
	return r.release()
}

// release runs the teardown sequence. Only the Close that moves the
// reference count to zero reaches it.
func (r *Ring) release() (err error) {
	r.bufs = nil
	if ret := munmap(r.sq.sqesPtr, r.sq.sqesSize); ret != nil && err == nil {
		err = ret
	}
	r.sq.sqesPtr = 0
	if r.cq.ptr != r.sq.ptr {
		if ret := munmap(r.cq.ptr, r.cq.size); ret != nil && err == nil {
			err = ret
		}
	}
	r.cq.ptr = 0
	if ret := munmap(r.sq.ptr, r.sq.size); ret != nil && err == nil {
		err = ret
	}
	r.sq.ptr = 0
	if r.fd >= 0 {
		if ret := syscall.Close(r.fd); ret != nil && err == nil {
			err = ret
		}
		r.fd = -1
	}
	return err
}

// Fd returns the file descriptor of the ring, or -1 once released.
func (r *Ring) Fd() int {
	return r.fd
}

// SQ returns the submit queue of the ring.
func (r *Ring) SQ() *SubmitQueue {
	return r.sq
}

// CQ returns the completion queue of the ring.
func (r *Ring) CQ() *CompletionQueue {
	return r.cq
}

// Params returns the kernel-filled setup parameters.
func (r *Ring) Params() *Params {
	return r.p
}

// EventFd returns the registered eventfd, or -1 if none is set.
func (r *Ring) EventFd() int {
	return r.eventFd
}

// ID returns a monotonically increasing value suitable for tagging
// entries via UserData (until uint64 wrapping).
func (r *Ring) ID() uint64 {
	return atomic.AddUint64(r.idx, 1)
}
