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

import "errors"

var (
	// ErrUnsupported is returned when a required platform capability is
	// absent, e.g. socket bring-up on an unsupported OS or interface
	// enumeration where the platform exposes none. It is terminal and is
	// never retried.
	ErrUnsupported = errors.New("not supported on this platform")

	// ErrSocketCreation is returned when the OS refuses to create a socket.
	ErrSocketCreation = errors.New("socket creation failed")

	// ErrBind is returned when binding a socket to its target address fails.
	// The wrap carries the human-readable address and the OS error text.
	ErrBind = errors.New("bind failed")

	// ErrListen is returned when moving a bound socket into the listening
	// state fails.
	ErrListen = errors.New("listen failed")

	// ErrQueryLocalName is returned when the OS-assigned local address of a
	// listening socket cannot be read back.
	ErrQueryLocalName = errors.New("querying local socket name failed")

	// ErrNoLocalAddresses is returned when interface enumeration finishes
	// without binding a single address.
	ErrNoLocalAddresses = errors.New("no local addresses")
)
