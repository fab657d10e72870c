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
	"fmt"

	"github.com/kinholt/listenkit/address"
)

// BindAllLocalAddresses binds one socket per distinct local interface
// address and appends them to the container, all sharing one port: the
// requested one, or a freshly picked ephemeral port when requestedPort is
// 0. The shared port is returned.
//
// The operation is all-or-nothing: the first bind failure closes every
// socket appended during this call, truncates the container back to its
// state at entry and returns the failure wrapped with the offending
// address. Finishing without a single bound address is itself a failure
// (ErrNoLocalAddresses). Sockets already in the container before the call
// are never touched.
func (b *Binder) BindAllLocalAddresses(c *Container, opts Options, requestedPort int) (int, error) {
	if !b.sys.HasInterfaceAddresses() {
		return 0, fmt.Errorf("%w: interface enumeration is unavailable", ErrUnsupported)
	}

	if requestedPort == 0 {
		port, err := b.PickUnusedPort()
		if err != nil {
			return 0, err
		}
		requestedPort = port
		b.logger.Debugf("picked unused port %d", requestedPort)
	}

	ifaddrs, err := b.sys.InterfaceAddresses()
	if err != nil {
		return 0, fmt.Errorf("%w: enumerating interface addresses: %v", ErrUnsupported, err)
	}

	ipv4OK := b.sys.IPv4Available()
	checkpoint := c.Len()
	assignedPort := 0

	for _, ifaddr := range ifaddrs {
		switch ifaddr.Family() {
		case address.FamilyIPv4:
			if !ipv4OK {
				continue
			}
		case address.FamilyIPv6:
		default:
			continue
		}

		addr := ifaddr.WithPort(uint16(requestedPort))
		if opts.ExcludeLinkLocal && address.IsLinkLocal(addr) {
			continue
		}
		if _, found := c.Find(addr); found {
			// multiple interfaces can report one address, e.g. bonding
			b.logger.Debugf("skipping duplicate interface address %s", addr)
			continue
		}

		b.logger.Debugf("adding local listener address %s", addr)
		sock, err := b.CreateAndPrepare(opts, addr)
		if err != nil {
			b.rollback(c, checkpoint)
			return 0, fmt.Errorf("failed to add listener %s: %w", addr, err)
		}
		c.Append(sock)
		assignedPort = sock.Port
	}

	if c.Len() == checkpoint {
		return 0, ErrNoLocalAddresses
	}
	return assignedPort, nil
}

// rollback closes every socket appended after the checkpoint and truncates
// the container back to it.
func (b *Binder) rollback(c *Container, checkpoint int) {
	for _, sock := range c.sockets[checkpoint:] {
		if err := b.sys.Close(sock.Fd); err != nil {
			b.logger.Warnf("closing rolled-back listener %s: %v", sock.Addr, err)
		}
	}
	c.sockets = c.sockets[:checkpoint]
}
