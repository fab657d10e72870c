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

// PickUnusedPort obtains an ephemeral free port by binding a throwaway
// socket to the wildcard address with port 0 and reading back the
// OS-assigned port. It binds "::" so the port is free across both
// families, falling back to "0.0.0.0" when the platform only offers an
// IPv4 socket.
//
// The port is released before returning; the usual time-of-check caveat
// applies, which is why enumeration binds every subsequent socket with
// SO_REUSEADDR semantics right away.
func (b *Binder) PickUnusedPort() (int, error) {
	wild := address.MakeWild6(0)
	fd, mode, err := b.sys.NewSocket(wild)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSocketCreation, err)
	}
	if mode == DSModeIPv4Only {
		wild = address.MakeWild4(0)
	}

	if err := b.sys.Bind(fd, wild); err != nil {
		_ = b.sys.Close(fd)
		return 0, fmt.Errorf("%w for address '%s': %v", ErrBind, wild, err)
	}
	local, err := b.sys.LocalAddress(fd)
	if err != nil {
		_ = b.sys.Close(fd)
		return 0, fmt.Errorf("%w: %v", ErrQueryLocalName, err)
	}
	_ = b.sys.Close(fd)

	port := int(local.Port())
	if port <= 0 {
		return 0, fmt.Errorf("%w: bad port %d", ErrQueryLocalName, port)
	}
	return port, nil
}
