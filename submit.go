// +build linux

package iouring

import (
	"golang.org/x/sys/unix"
)

// Submit publishes all queued submit entries and enters the ring,
// optionally waiting until at least wait completions have arrived. It
// returns the number of entries the kernel accepted.
//
// With nothing queued it degrades to Wait when wait > 0 and is a no-op
// otherwise. In SQPOLL mode the syscall is skipped entirely when the
// kernel poll thread is awake and no completions are awaited; the
// poll thread picks the published tail up on its own.
func (r *Ring) Submit(wait uint, sigset *unix.Sigset_t) (int, error) {
	queued := r.sq.Length()
	if queued == 0 {
		if wait > 0 {
			return 0, r.Wait(wait, sigset)
		}
		return 0, nil
	}

	r.sq.FlushTail()

	var flags uint
	if wait > 0 {
		flags |= EnterGetEvents
	}
	if r.p.Flags&SetupSQPoll != 0 {
		if r.sq.NeedWakeup() {
			flags |= EnterSqWakeup
		} else if wait == 0 {
			return int(queued), nil
		}
	}
	return Enter(r.fd, uint(queued), wait, flags, sigset)
}

// Wait blocks until at least n completions are available in the
// completion ring. If they already are, no syscall is made.
func (r *Ring) Wait(n uint, sigset *unix.Sigset_t) error {
	if n == 0 {
		return nil
	}
	if uint(r.cq.Length()) >= n {
		return nil
	}
	_, err := Enter(r.fd, 0, n, EnterGetEvents, sigset)
	return err
}
