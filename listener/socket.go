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

import "github.com/kinholt/listenkit/address"

// Socket is one bound-and-listening OS socket. It is only ever handed out
// fully prepared: Port is the OS-assigned local port and is always
// positive. The holder of the containing Container owns the file
// descriptor and must close it exactly once.
type Socket struct {
	// Fd is the OS handle, ready to accept.
	Fd int
	// Addr is the canonical local address the socket was bound to.
	Addr address.ResolvedAddress
	// Mode records how the socket covers the two IP families.
	Mode DSMode
	// ZeroCopy reports whether zero-copy send was successfully enabled.
	ZeroCopy bool
	// Port is the OS-assigned local port.
	Port int
}

// Container is an ordered, append-only collection of prepared sockets
// serving one logical listener. It is populated synchronously during
// bring-up and must not be read concurrently until the bind call that
// mutates it returns.
type Container struct {
	sockets []Socket
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Append adds a prepared socket.
func (c *Container) Append(sock Socket) {
	c.sockets = append(c.sockets, sock)
}

// Find returns the socket bound to exactly addr, if any. Interface
// aliasing (e.g. bonded NICs) can report one address several times; Find
// is what keeps the container free of duplicate bindings.
func (c *Container) Find(addr address.ResolvedAddress) (Socket, bool) {
	for _, sock := range c.sockets {
		if sock.Addr == addr {
			return sock, true
		}
	}
	return Socket{}, false
}

// Len returns the number of held sockets.
func (c *Container) Len() int {
	return len(c.sockets)
}

// Sockets returns the held sockets in insertion order. The returned slice
// is a copy; the container stays append-only.
func (c *Container) Sockets() []Socket {
	out := make([]Socket, len(c.sockets))
	copy(out, c.sockets)
	return out
}
