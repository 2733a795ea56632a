// +build linux

package iouring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSubmitNothing(t *testing.T) {
	r, err := New(4, nil)
	require.NoError(t, err)
	defer r.Close()

	n, err := r.Submit(0, nil)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestSubmitSingleNop(t *testing.T) {
	r, err := New(4, nil)
	require.NoError(t, err)
	defer r.Close()

	r.SQ().PutEntry(Nop{UserData: 1})
	n, err := r.Submit(1, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.False(t, r.CQ().Empty())
	cqe := r.CQ().Front()
	require.Equal(t, uint64(1), cqe.UserData)
	require.NoError(t, cqe.Err())
	r.CQ().PopFront()
	require.True(t, r.CQ().Empty())
}

func TestSubmitBatchNops(t *testing.T) {
	r, err := New(16, nil)
	require.NoError(t, err)
	defer r.Close()

	for i := 0; i < 16; i++ {
		r.SQ().PutEntry(Nop{UserData: uint64(i)})
	}
	require.True(t, r.SQ().Full())

	n, err := r.Submit(16, nil)
	require.NoError(t, err)
	require.Equal(t, 16, n)

	// Completion order is not submission order in general; every tag
	// must show up exactly once.
	seen := map[uint64]int{}
	count := 0
	it := r.CQ().Drain()
	for it.Next() {
		seen[it.Entry().UserData]++
		count++
	}
	require.Equal(t, 16, count)
	for i := 0; i < 16; i++ {
		require.Equal(t, 1, seen[uint64(i)])
	}
}

func TestSubmitThenWaitFastPath(t *testing.T) {
	r, err := New(4, nil)
	require.NoError(t, err)
	defer r.Close()

	r.SQ().PutEntry(Nop{UserData: 42})
	n, err := r.Submit(1, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// The completion is already in the ring, so waiting again returns
	// without a syscall.
	require.NoError(t, r.Wait(1, nil))
	require.Equal(t, uint32(1), r.CQ().Length())
}

func TestSubmitEmptyDegradesToWait(t *testing.T) {
	r, err := New(4, nil)
	require.NoError(t, err)
	defer r.Close()

	r.SQ().PutEntry(Nop{UserData: 7})
	_, err = r.Submit(1, nil)
	require.NoError(t, err)

	// Nothing queued: submit with a wait degrades to the wait path and
	// the pending completion satisfies it immediately.
	n, err := r.Submit(1, nil)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestSubmitUserDataRoundTrip(t *testing.T) {
	r, err := New(8, nil)
	require.NoError(t, err)
	defer r.Close()

	tag := r.ID()
	r.SQ().PutEntry(Nop{UserData: tag})
	_, err = r.Submit(1, nil)
	require.NoError(t, err)

	cqe := r.CQ().Front()
	r.CQ().PopFront()
	require.Equal(t, tag, cqe.UserData)
}

func TestSubmitReadWrite(t *testing.T) {
	r, err := New(8, nil)
	require.NoError(t, err)
	defer r.Close()

	f, err := tempFile(t, "iouring-submit-rw")
	require.NoError(t, err)

	in := []byte("ring around the rosie")
	r.SQ().PutEntry(Write{
		Fd:       int32(f.Fd()),
		Buf:      in,
		UserData: 1,
	})
	_, err = r.Submit(1, nil)
	require.NoError(t, err)

	cqe := r.CQ().Front()
	r.CQ().PopFront()
	require.NoError(t, cqe.Err())
	require.Equal(t, int32(len(in)), cqe.Res)

	out := make([]byte, len(in))
	r.SQ().PutEntry(Read{
		Fd:       int32(f.Fd()),
		Buf:      out,
		UserData: 2,
	})
	_, err = r.Submit(1, nil)
	require.NoError(t, err)

	cqe = r.CQ().Front()
	r.CQ().PopFront()
	require.NoError(t, cqe.Err())
	require.Equal(t, in, out)
}

func TestWaitWithSignalMask(t *testing.T) {
	r, err := New(4, nil)
	require.NoError(t, err)
	defer r.Close()

	var sigset unix.Sigset_t

	// One completion lands immediately, one arrives when the timer
	// runs out, so the second wait has to block inside the enter with
	// the mask applied.
	r.SQ().PutEntry(Nop{UserData: 1})
	ts := KernelTimespec{Nsec: int64(50 * time.Millisecond)}
	r.SQ().PutEntry(TimeoutOp{Ts: &ts, UserData: 2})
	n, err := r.Submit(0, &sigset)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, r.Wait(2, &sigset))
	require.Equal(t, uint32(2), r.CQ().Length())
}

func TestSubmitWithSignalMask(t *testing.T) {
	r, err := New(4, nil)
	require.NoError(t, err)
	defer r.Close()

	var sigset unix.Sigset_t
	r.SQ().PutEntry(Nop{UserData: 1})
	n, err := r.Submit(1, &sigset)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	cqe := r.CQ().Front()
	r.CQ().PopFront()
	require.Equal(t, uint64(1), cqe.UserData)
}

func BenchmarkSubmitNop(b *testing.B) {
	r, err := New(1024, nil)
	require.NoError(b, err)
	defer r.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.SQ().PutEntry(Nop{UserData: uint64(i)})
		if _, err := r.Submit(1, nil); err != nil {
			b.Fatal(err)
		}
		r.CQ().PopFront()
	}
}
