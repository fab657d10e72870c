// MIT License
//
// Copyright (c) 2024-2026 ListenKit Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package listener

import (
	"time"

	"github.com/kinholt/listenkit/address"
)

// DSMode describes how a freshly created socket covers the two IP families.
// It is a property of one socket creation attempt, not of a container.
type DSMode int

const (
	// DSModeNone marks a non-IP socket (e.g. Unix domain).
	DSModeNone DSMode = iota
	// DSModeIPv4Only marks a socket that only accepts IPv4 traffic.
	DSModeIPv4Only
	// DSModeIPv6Only marks an IPv6 socket that does not accept IPv4-mapped
	// traffic; a second socket is needed to cover IPv4.
	DSModeIPv6Only
	// DSModeDualStack marks an IPv6 socket that also accepts IPv4-mapped
	// traffic.
	DSModeDualStack
)

// String returns a short name for the mode.
func (m DSMode) String() string {
	switch m {
	case DSModeIPv4Only:
		return "ipv4-only"
	case DSModeIPv6Only:
		return "ipv6-only"
	case DSModeDualStack:
		return "dual-stack"
	default:
		return "none"
	}
}

// System is the platform capability surface consumed by a Binder: socket
// creation with dual-stack mode detection, the bind/listen/getsockname
// cycle, the per-socket option primitives, interface enumeration and the
// runtime-readable maximum listen backlog.
//
// The production implementation is returned by DefaultSystem. On platforms
// without socket support every operation returns ErrUnsupported instead of
// aborting the process. Tests substitute their own System via WithSystem.
type System interface {
	// NewSocket creates a stream socket able to serve addr and reports the
	// dual-stack mode it ended up with. For IPv6 targets the socket is
	// dual-stack when the platform permits it; when the platform has no
	// IPv6 stack at all, IPv4-mapped and wildcard targets fall back to an
	// IPv4-only socket.
	NewSocket(addr address.ResolvedAddress) (fd int, mode DSMode, err error)
	// Bind binds fd to addr.
	Bind(fd int, addr address.ResolvedAddress) error
	// Listen moves fd into the listening state with the given backlog.
	Listen(fd int, backlog int) error
	// LocalAddress reads back the OS-assigned local address of fd.
	LocalAddress(fd int) (address.ResolvedAddress, error)
	// Close releases fd.
	Close(fd int) error

	// SetNonBlocking puts fd into non-blocking mode.
	SetNonBlocking(fd int) error
	// SetCloseOnExec marks fd close-on-exec.
	SetCloseOnExec(fd int) error
	// ReusePortSupported reports whether SO_REUSEPORT exists on this platform.
	ReusePortSupported() bool
	// SetReusePort enables load-distributing port sharing.
	SetReusePort(fd int) error
	// SetReuseAddr allows rebinding an address in TIME_WAIT.
	SetReuseAddr(fd int) error
	// SetLowLatency disables Nagle's algorithm.
	SetLowLatency(fd int) error
	// SetDSCP sets the differentiated-services code point for the family.
	SetDSCP(fd int, family address.Family, dscp int) error
	// SetZeroCopy enables zero-copy sends where the kernel offers them.
	SetZeroCopy(fd int) error
	// SetNoSigpipe stops broken-pipe writes from raising SIGPIPE where the
	// platform controls that per socket.
	SetNoSigpipe(fd int) error
	// SetUserTimeout bounds how long transmitted data may remain
	// unacknowledged before the connection is closed.
	SetUserTimeout(fd int, timeout time.Duration) error

	// HasInterfaceAddresses reports whether local interface enumeration is
	// available. Absence is a capability, not an error: the wildcard
	// orchestrator degrades to wildcard-only binding.
	HasInterfaceAddresses() bool
	// InterfaceAddresses lists the addresses of all local interfaces.
	InterfaceAddresses() ([]address.ResolvedAddress, error)
	// IPv4Available reports whether IPv4 sockets can be created at all,
	// probed once per process.
	IPv4Available() bool
	// MaxListenBacklog reads the platform's configured maximum accept
	// queue length.
	MaxListenBacklog() (int, error)
}

// DefaultSystem returns the process-wide platform implementation of System.
func DefaultSystem() System {
	return defaultSystem()
}
