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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinholt/listenkit/address"
)

func TestBindWildcard(t *testing.T) {
	t.Run("With a dual-stack platform", func(t *testing.T) {
		sys := newFakeSystem()
		binder := newTestBinder(sys)
		container := NewContainer()

		port, err := binder.BindWildcard(container, Options{}, 0)
		require.NoError(t, err)
		assert.Positive(t, port)
		require.Equal(t, 1, container.Len())
		sock := container.Sockets()[0]
		assert.Equal(t, DSModeDualStack, sock.Mode)
		assert.Equal(t, address.FamilyIPv6, sock.Addr.Family())
	})

	t.Run("With an IPv6-only platform", func(t *testing.T) {
		sys := newFakeSystem()
		sys.mode = DSModeIPv6Only
		binder := newTestBinder(sys)
		container := NewContainer()

		port, err := binder.BindWildcard(container, Options{}, 0)
		require.NoError(t, err)
		assert.Positive(t, port)
		require.Equal(t, 2, container.Len())
		sockets := container.Sockets()
		assert.Equal(t, DSModeIPv6Only, sockets[0].Mode)
		assert.Equal(t, DSModeIPv4Only, sockets[1].Mode)
		assert.Equal(t, port, sockets[0].Port)
		assert.Equal(t, port, sockets[1].Port)
	})

	t.Run("Without IPv6", func(t *testing.T) {
		sys := newFakeSystem()
		sys.socketErr = func(addr address.ResolvedAddress) error {
			if addr.Family() == address.FamilyIPv6 {
				return errors.New("address family not supported")
			}
			return nil
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		port, err := binder.BindWildcard(container, Options{}, 9000)
		require.NoError(t, err)
		assert.Equal(t, 9000, port)
		require.Equal(t, 1, container.Len())
		assert.Equal(t, address.FamilyIPv4, container.Sockets()[0].Addr.Family())
	})

	t.Run("With an IPv4-only socket for the IPv6 wildcard", func(t *testing.T) {
		sys := newFakeSystem()
		sys.mode = DSModeIPv4Only
		binder := newTestBinder(sys)
		container := NewContainer()

		port, err := binder.BindWildcard(container, Options{}, 9000)
		require.NoError(t, err)
		assert.Equal(t, 9000, port)
		require.Equal(t, 1, container.Len())
		assert.Equal(t, address.MakeWild4(9000), container.Sockets()[0].Addr)
	})

	t.Run("With both families failing", func(t *testing.T) {
		sys := newFakeSystem()
		sys.socketErr = func(address.ResolvedAddress) error {
			return errors.New("too many open files")
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		_, err := binder.BindWildcard(container, Options{}, 9000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add any wildcard listeners")
		assert.ErrorIs(t, err, ErrSocketCreation)
		assert.Zero(t, container.Len())
	})

	t.Run("With wildcard expansion", func(t *testing.T) {
		sys := newFakeSystem()
		sys.ifaddrs = []address.ResolvedAddress{
			mkAddr(t, "10.0.0.1", 0),
			mkAddr(t, "2001:db8::1", 0),
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		port, err := binder.BindWildcard(container, Options{ExpandWildcardAddrs: true}, 9000)
		require.NoError(t, err)
		assert.Equal(t, 9000, port)
		require.Equal(t, 2, container.Len())
		for _, sock := range container.Sockets() {
			assert.False(t, sock.Addr.IsWildcard())
		}
	})
}
