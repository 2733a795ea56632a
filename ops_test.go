// +build linux

package iouring

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpWriteEntryFields(t *testing.T) {
	buf := make([]byte, 64)
	var sqe SubmitEntry

	Read{Fd: 3, Buf: buf, Offset: 128, UserData: 9}.WriteEntry(&sqe)
	require.Equal(t, OpRead, sqe.Opcode)
	require.Equal(t, int32(3), sqe.Fd)
	require.Equal(t, uint32(len(buf)), sqe.Len)
	require.Equal(t, uint64(128), sqe.Offset)
	require.Equal(t, uint64(9), sqe.UserData)
	require.NotZero(t, sqe.Addr)

	sqe = SubmitEntry{}
	Cancel{Target: 9, UserData: 10}.WriteEntry(&sqe)
	require.Equal(t, OpAsyncCancel, sqe.Opcode)
	require.Equal(t, uint64(9), sqe.Addr)
	require.Equal(t, int32(-1), sqe.Fd)
}

func TestTimeoutExpires(t *testing.T) {
	r, err := New(4, nil)
	require.NoError(t, err)
	defer r.Close()

	ts := KernelTimespec{Nsec: int64(5 * time.Millisecond)}
	r.SQ().PutEntry(TimeoutOp{Ts: &ts, UserData: 1})
	_, err = r.Submit(1, nil)
	require.NoError(t, err)

	cqe := r.CQ().Front()
	r.CQ().PopFront()
	require.Equal(t, uint64(1), cqe.UserData)
	// An expired timeout completes with -ETIME.
	require.Equal(t, syscall.ETIME, cqe.Err())
}

func TestCancelTimeout(t *testing.T) {
	r, err := New(4, nil)
	require.NoError(t, err)
	defer r.Close()

	ts := KernelTimespec{Sec: 60}
	r.SQ().PutEntry(TimeoutOp{Ts: &ts, UserData: 1})
	_, err = r.Submit(0, nil)
	require.NoError(t, err)

	r.SQ().PutEntry(TimeoutRemoveOp{Target: 1, UserData: 2})
	_, err = r.Submit(2, nil)
	require.NoError(t, err)

	// Cancellation is cooperative: the canceled timeout and the remove
	// both complete.
	seen := map[uint64]bool{}
	it := r.CQ().Drain()
	for it.Next() {
		seen[it.Entry().UserData] = true
	}
	require.True(t, seen[1])
	require.True(t, seen[2])
}
