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
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kinholt/listenkit/address"
	"github.com/kinholt/listenkit/log"
)

// fakeSystem is a scriptable System for exercising bring-up logic without
// touching real sockets. Every created descriptor is tracked so tests can
// assert that failure paths close exactly what they opened.
type fakeSystem struct {
	mode           DSMode
	socketErr      func(addr address.ResolvedAddress) error
	bindErr        func(addr address.ResolvedAddress) error
	listenErr      error
	localErr       error
	closeErr       error
	zeroCopyErr    error
	noSigpipeErr   error
	userTimeoutErr error
	reusePort      bool
	hasIfaddrs     bool
	ifaddrs        []address.ResolvedAddress
	ifaddrsErr     error
	ipv4           bool
	backlog        int
	backlogErr     error

	mu               sync.Mutex
	nextFd           int
	nextPort         uint16
	open             map[int]address.ResolvedAddress
	closed           []int
	binds            []address.ResolvedAddress
	reusePortFds     []int
	dscpCalls        int
	userTimeoutCalls int
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		mode:       DSModeDualStack,
		reusePort:  true,
		hasIfaddrs: true,
		ipv4:       true,
		backlog:    4096,
		nextFd:     100,
		nextPort:   50000,
		open:       make(map[int]address.ResolvedAddress),
	}
}

func (f *fakeSystem) NewSocket(addr address.ResolvedAddress) (int, DSMode, error) {
	if f.socketErr != nil {
		if err := f.socketErr(addr); err != nil {
			return -1, DSModeNone, err
		}
	}
	mode := f.mode
	switch addr.Family() {
	case address.FamilyIPv4:
		mode = DSModeIPv4Only
	case address.FamilyUnix:
		mode = DSModeNone
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	fd := f.nextFd
	f.nextFd++
	f.open[fd] = addr
	return fd, mode, nil
}

func (f *fakeSystem) Bind(fd int, addr address.ResolvedAddress) error {
	if f.bindErr != nil {
		if err := f.bindErr(addr); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open[fd] = addr
	f.binds = append(f.binds, addr)
	return nil
}

func (f *fakeSystem) Listen(fd int, backlog int) error {
	return f.listenErr
}

func (f *fakeSystem) LocalAddress(fd int) (address.ResolvedAddress, error) {
	if f.localErr != nil {
		return address.ResolvedAddress{}, f.localErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	addr := f.open[fd]
	if addr.IsIP() && addr.Port() == 0 {
		addr = addr.WithPort(f.nextPort)
		f.nextPort++
		f.open[fd] = addr
	}
	return addr, nil
}

func (f *fakeSystem) Close(fd int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.open, fd)
	f.closed = append(f.closed, fd)
	return f.closeErr
}

func (f *fakeSystem) SetNonBlocking(fd int) error { return nil }
func (f *fakeSystem) SetCloseOnExec(fd int) error { return nil }
func (f *fakeSystem) ReusePortSupported() bool    { return f.reusePort }

func (f *fakeSystem) SetReusePort(fd int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reusePortFds = append(f.reusePortFds, fd)
	return nil
}

func (f *fakeSystem) SetReuseAddr(fd int) error  { return nil }
func (f *fakeSystem) SetLowLatency(fd int) error { return nil }

func (f *fakeSystem) SetDSCP(fd int, family address.Family, dscp int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dscpCalls++
	return nil
}

func (f *fakeSystem) SetZeroCopy(fd int) error  { return f.zeroCopyErr }
func (f *fakeSystem) SetNoSigpipe(fd int) error { return f.noSigpipeErr }

func (f *fakeSystem) SetUserTimeout(fd int, timeout time.Duration) error {
	f.mu.Lock()
	f.userTimeoutCalls++
	f.mu.Unlock()
	return f.userTimeoutErr
}

func (f *fakeSystem) HasInterfaceAddresses() bool { return f.hasIfaddrs }

func (f *fakeSystem) InterfaceAddresses() ([]address.ResolvedAddress, error) {
	return f.ifaddrs, f.ifaddrsErr
}

func (f *fakeSystem) IPv4Available() bool { return f.ipv4 }

func (f *fakeSystem) MaxListenBacklog() (int, error) {
	return f.backlog, f.backlogErr
}

func (f *fakeSystem) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.open)
}

func (f *fakeSystem) closedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.closed)
}

func (f *fakeSystem) lastBind() address.ResolvedAddress {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.binds) == 0 {
		return address.ResolvedAddress{}
	}
	return f.binds[len(f.binds)-1]
}

func newTestBinder(sys System) *Binder {
	return NewBinder(WithSystem(sys), WithLogger(log.DiscardLogger))
}

func mkAddr(t *testing.T, ip string, port uint16) address.ResolvedAddress {
	t.Helper()
	addr, err := address.FromIP(net.ParseIP(ip), port)
	require.NoError(t, err)
	return addr
}
