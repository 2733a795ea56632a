// +build linux

package iouring

import (
	"syscall"

	"github.com/pkg/errors"
)

var (
	// ErrBuffersRegistered is returned when registering fixed buffers
	// on a ring that already has a buffer set registered. The cause is
	// EBUSY so callers branching on the raw errno keep working.
	ErrBuffersRegistered = errors.Wrap(syscall.EBUSY, "buffers already registered")

	// ErrNoBuffersRegistered is returned when unregistering fixed
	// buffers and none are registered; the cause is ENXIO.
	ErrNoBuffersRegistered = errors.Wrap(syscall.ENXIO, "no buffers registered")
)
