// +build linux

package iouring

import (
	"golang.org/x/sys/unix"
)

// RingOption is an option for configuring a Ring.
type RingOption func(*Ring) error

// WithEventFd is used to create an eventfd and register it to the
// Ring. The eventfd can be accessed using the EventFd method.
func WithEventFd(initval uint, flags int, async bool) RingOption {
	return func(r *Ring) error {
		fd, err := unix.Eventfd(initval, flags)
		if err != nil {
			return err
		}
		r.eventFd = fd
		if async {
			return r.RegisterEventFdAsync(fd)
		}
		return r.RegisterEventFd(fd)
	}
}

// WithID is used to set the starting value for the monotonically
// increasing ID method.
func WithID(id uint64) RingOption {
	return func(r *Ring) error {
		*r.idx = id
		return nil
	}
}
