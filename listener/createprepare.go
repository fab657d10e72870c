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

// CreateAndPrepare creates a socket for addr, applies the full option set,
// binds, starts listening and returns the prepared socket. On success the
// socket's Port is always positive; on any failure the descriptor is closed
// before the error is returned.
//
// When the factory had to settle for an IPv4-only socket while addr was an
// IPv6 form of an IPv4 endpoint (IPv4-mapped, or the wildcard), the stored
// address is rewritten to its plain IPv4 form so that later deduplication
// and reporting match the actual socket family.
func (b *Binder) CreateAndPrepare(opts Options, addr address.ResolvedAddress) (Socket, error) {
	fd, mode, err := b.sys.NewSocket(addr)
	if err != nil {
		return Socket{}, fmt.Errorf("%w for address '%s': %v", ErrSocketCreation, addr, err)
	}

	sock := Socket{Fd: fd, Addr: addr, Mode: mode}
	if mode == DSModeIPv4Only && addr.Family() == address.FamilyIPv6 {
		if v4, ok := addr.AsIPv4(); ok {
			sock.Addr = v4
		} else if addr.IsWildcard() {
			sock.Addr = address.MakeWild4(addr.Port())
		}
	}

	if err := b.prepareSocket(opts, &sock); err != nil {
		return Socket{}, err
	}
	if sock.Port <= 0 {
		_ = b.sys.Close(sock.Fd)
		return Socket{}, fmt.Errorf("%w: prepared socket for '%s' reported port %d",
			ErrQueryLocalName, sock.Addr, sock.Port)
	}
	return sock, nil
}
