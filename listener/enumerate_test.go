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

func TestBindAllLocalAddresses(t *testing.T) {
	t.Run("With a fixed port", func(t *testing.T) {
		sys := newFakeSystem()
		sys.ifaddrs = []address.ResolvedAddress{
			mkAddr(t, "10.0.0.1", 0),
			mkAddr(t, "2001:db8::1", 0),
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		port, err := binder.BindAllLocalAddresses(container, Options{}, 9000)
		require.NoError(t, err)
		assert.Equal(t, 9000, port)
		require.Equal(t, 2, container.Len())
		for _, sock := range container.Sockets() {
			assert.Equal(t, 9000, sock.Port)
		}
	})

	t.Run("With port zero", func(t *testing.T) {
		sys := newFakeSystem()
		sys.ifaddrs = []address.ResolvedAddress{
			mkAddr(t, "10.0.0.1", 0),
			mkAddr(t, "192.168.1.1", 0),
			mkAddr(t, "2001:db8::1", 0),
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		port, err := binder.BindAllLocalAddresses(container, Options{}, 0)
		require.NoError(t, err)
		assert.Positive(t, port)
		require.Equal(t, 3, container.Len())
		for _, sock := range container.Sockets() {
			assert.Equal(t, port, sock.Port)
		}
	})

	t.Run("With duplicate interface addresses", func(t *testing.T) {
		sys := newFakeSystem()
		sys.ifaddrs = []address.ResolvedAddress{
			mkAddr(t, "10.0.0.1", 0),
			mkAddr(t, "10.0.0.1", 0),
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		_, err := binder.BindAllLocalAddresses(container, Options{}, 9000)
		require.NoError(t, err)
		assert.Equal(t, 1, container.Len())
	})

	t.Run("With link-local exclusion", func(t *testing.T) {
		sys := newFakeSystem()
		sys.ifaddrs = []address.ResolvedAddress{
			mkAddr(t, "169.254.1.1", 0),
			mkAddr(t, "fe80::1", 0),
			mkAddr(t, "10.0.0.1", 0),
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		_, err := binder.BindAllLocalAddresses(container, Options{ExcludeLinkLocal: true}, 9000)
		require.NoError(t, err)
		require.Equal(t, 1, container.Len())
		assert.Equal(t, "10.0.0.1", container.Sockets()[0].Addr.IP().String())
	})

	t.Run("Without IPv4 support", func(t *testing.T) {
		sys := newFakeSystem()
		sys.ipv4 = false
		sys.ifaddrs = []address.ResolvedAddress{
			mkAddr(t, "10.0.0.1", 0),
			mkAddr(t, "2001:db8::1", 0),
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		_, err := binder.BindAllLocalAddresses(container, Options{}, 9000)
		require.NoError(t, err)
		require.Equal(t, 1, container.Len())
		assert.Equal(t, address.FamilyIPv6, container.Sockets()[0].Addr.Family())
	})

	t.Run("With non-IP interface entries", func(t *testing.T) {
		sys := newFakeSystem()
		unixAddr, err := address.NewUnix("/run/stray.sock")
		require.NoError(t, err)
		sys.ifaddrs = []address.ResolvedAddress{
			unixAddr,
			mkAddr(t, "10.0.0.1", 0),
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		_, err = binder.BindAllLocalAddresses(container, Options{}, 9000)
		require.NoError(t, err)
		assert.Equal(t, 1, container.Len())
	})

	t.Run("With a mid-list failure", func(t *testing.T) {
		sys := newFakeSystem()
		failing := mkAddr(t, "10.0.0.2", 9000)
		sys.ifaddrs = []address.ResolvedAddress{
			mkAddr(t, "10.0.0.1", 0),
			mkAddr(t, "10.0.0.2", 0),
		}
		sys.bindErr = func(addr address.ResolvedAddress) error {
			if addr == failing {
				return errors.New("address already in use")
			}
			return nil
		}
		binder := newTestBinder(sys)
		container := NewContainer()
		// a socket bound before this call must survive the rollback
		container.Append(Socket{Fd: 7, Addr: mkAddr(t, "127.0.0.1", 9000), Port: 9000})

		_, err := binder.BindAllLocalAddresses(container, Options{}, 9000)
		require.ErrorIs(t, err, ErrBind)
		assert.Contains(t, err.Error(), failing.String())
		assert.Equal(t, 1, container.Len())
		assert.Zero(t, sys.openCount())
		assert.NotContains(t, sys.closed, 7)
	})

	t.Run("With no usable addresses", func(t *testing.T) {
		sys := newFakeSystem()
		sys.ifaddrs = []address.ResolvedAddress{
			mkAddr(t, "169.254.1.1", 0),
		}
		binder := newTestBinder(sys)
		container := NewContainer()

		_, err := binder.BindAllLocalAddresses(container, Options{ExcludeLinkLocal: true}, 9000)
		require.ErrorIs(t, err, ErrNoLocalAddresses)
		assert.Zero(t, container.Len())
	})

	t.Run("Without enumeration capability", func(t *testing.T) {
		sys := newFakeSystem()
		sys.hasIfaddrs = false
		binder := newTestBinder(sys)

		_, err := binder.BindAllLocalAddresses(NewContainer(), Options{}, 9000)
		require.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("With an enumeration failure", func(t *testing.T) {
		sys := newFakeSystem()
		sys.ifaddrsErr = errors.New("netlink failure")
		binder := newTestBinder(sys)

		_, err := binder.BindAllLocalAddresses(NewContainer(), Options{}, 9000)
		require.ErrorIs(t, err, ErrUnsupported)
	})
}
