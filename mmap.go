// +build linux

package iouring

import (
	"reflect"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
)

var (
	uint32Size = uint32(unsafe.Sizeof(uint32(0)))
	sqeSize    = uint32(unsafe.Sizeof(SubmitEntry{}))
	cqeSize    = uint32(unsafe.Sizeof(CompletionEntry{}))
)

// MmapRing maps the submit and completion rings plus the sqe array for
// a ring fd, using the offsets the kernel filled into p during setup.
// The offsets vary by kernel version and feature flags, so they are
// always resolved here rather than assumed. On any failure every
// mapping made so far is unmapped before the error is returned; sq and
// cq are only usable when the error is nil.
//
// See: https://github.com/axboe/liburing/blob/master/src/setup.c
func MmapRing(fd int, p *Params, sq *SubmitQueue, cq *CompletionQueue) error {
	sq.size = uint32(uint(p.SqOffset.Array) + uint(p.SqEntries)*uint(uint32Size))
	cq.size = uint32(uint(p.CqOffset.Cqes) + uint(p.CqEntries)*uint(cqeSize))

	singleMmap := p.Features&FeatSingleMmap != 0
	if singleMmap {
		if cq.size > sq.size {
			sq.size = cq.size
		} else {
			cq.size = sq.size
		}
	}

	sqPtr, err := mmap(fd, sq.size, SqRingOffset)
	if err != nil {
		return errors.Wrap(err, "failed to mmap sq ring")
	}
	sq.ptr = sqPtr

	cqPtr := sqPtr
	if !singleMmap {
		cqPtr, err = mmap(fd, cq.size, CqRingOffset)
		if err != nil {
			munmap(sq.ptr, sq.size)
			sq.ptr = 0
			return errors.Wrap(err, "failed to mmap cq ring")
		}
	}
	cq.ptr = cqPtr

	// The sqe array is always its own mapping, independent of the two
	// ring mappings.
	sq.sqesSize = uint32(p.SqEntries) * sqeSize
	sqesPtr, err := mmap(fd, sq.sqesSize, SqesOffset)
	if err != nil {
		if !singleMmap {
			munmap(cq.ptr, cq.size)
		}
		cq.ptr = 0
		munmap(sq.ptr, sq.size)
		sq.ptr = 0
		return errors.Wrap(err, "failed to mmap sqe array")
	}
	sq.sqesPtr = sqesPtr

	// Conversion of a uintptr back to Pointer is not valid in general,
	// except for a Pointer converted to uintptr and back, with
	// arithmetic.
	sq.khead = (*uint32)(unsafe.Pointer(sqPtr + uintptr(p.SqOffset.Head)))
	sq.ktail = (*uint32)(unsafe.Pointer(sqPtr + uintptr(p.SqOffset.Tail)))
	sq.mask = (*uint32)(unsafe.Pointer(sqPtr + uintptr(p.SqOffset.RingMask)))
	sq.numEntries = (*uint32)(unsafe.Pointer(sqPtr + uintptr(p.SqOffset.RingEntries)))
	sq.kflags = (*uint32)(unsafe.Pointer(sqPtr + uintptr(p.SqOffset.Flags)))
	sq.dropped = (*uint32)(unsafe.Pointer(sqPtr + uintptr(p.SqOffset.Dropped)))

	sq.array = *(*[]uint32)(unsafe.Pointer(&reflect.SliceHeader{
		Data: sqPtr + uintptr(p.SqOffset.Array),
		Len:  int(p.SqEntries),
		Cap:  int(p.SqEntries),
	}))
	sq.entries = *(*[]SubmitEntry)(unsafe.Pointer(&reflect.SliceHeader{
		Data: sqesPtr,
		Len:  int(p.SqEntries),
		Cap:  int(p.SqEntries),
	}))

	cq.khead = (*uint32)(unsafe.Pointer(cqPtr + uintptr(p.CqOffset.Head)))
	cq.ktail = (*uint32)(unsafe.Pointer(cqPtr + uintptr(p.CqOffset.Tail)))
	cq.mask = (*uint32)(unsafe.Pointer(cqPtr + uintptr(p.CqOffset.RingMask)))
	cq.numEntries = (*uint32)(unsafe.Pointer(cqPtr + uintptr(p.CqOffset.RingEntries)))
	cq.overflow = (*uint32)(unsafe.Pointer(cqPtr + uintptr(p.CqOffset.Overflow)))

	cq.entries = *(*[]CompletionEntry)(unsafe.Pointer(&reflect.SliceHeader{
		Data: cqPtr + uintptr(p.CqOffset.Cqes),
		Len:  int(p.CqEntries),
		Cap:  int(p.CqEntries),
	}))

	// Identity indirection: written once here, never touched again, so
	// ring indices address sqe slots directly after masking.
	for i := uint32(0); i < p.SqEntries; i++ {
		sq.array[i] = i
	}

	sq.localTail = *sq.ktail
	cq.localHead = *cq.khead
	return nil
}

func mmap(fd int, length uint32, offset uint64) (uintptr, error) {
	ptr, _, errno := syscall.Syscall6(
		syscall.SYS_MMAP,
		uintptr(0),
		uintptr(length),
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_SHARED|syscall.MAP_POPULATE,
		uintptr(fd),
		uintptr(offset),
	)
	if errno != 0 {
		return 0, errno
	}
	return ptr, nil
}

// munmap is a no-op when ptr is zero so teardown can run over
// partially constructed state.
func munmap(ptr uintptr, length uint32) error {
	if ptr == 0 {
		return nil
	}
	_, _, errno := syscall.Syscall(
		syscall.SYS_MUNMAP,
		ptr,
		uintptr(length),
		uintptr(0),
	)
	if errno != 0 {
		return errno
	}
	return nil
}
