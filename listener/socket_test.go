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
)

func TestContainer(t *testing.T) {
	t.Run("Find and Len", func(t *testing.T) {
		container := NewContainer()
		addr := mkAddr(t, "10.0.0.1", 9000)
		container.Append(Socket{Fd: 3, Addr: addr, Port: 9000})

		found, ok := container.Find(addr)
		require.True(t, ok)
		assert.Equal(t, 3, found.Fd)

		_, ok = container.Find(mkAddr(t, "10.0.0.2", 9000))
		assert.False(t, ok)
		assert.Equal(t, 1, container.Len())
	})

	t.Run("Sockets returns a copy", func(t *testing.T) {
		container := NewContainer()
		container.Append(Socket{Fd: 3, Addr: mkAddr(t, "10.0.0.1", 9000), Port: 9000})

		sockets := container.Sockets()
		sockets[0].Fd = 99
		assert.Equal(t, 3, container.Sockets()[0].Fd)
	})
}

func TestTeardown(t *testing.T) {
	t.Run("Happy Path", func(t *testing.T) {
		sys := newFakeSystem()
		binder := newTestBinder(sys)
		container := NewContainer()

		_, err := binder.BindWildcard(container, Options{}, 0)
		require.NoError(t, err)
		require.NoError(t, binder.Teardown(container))
		assert.Zero(t, container.Len())
		assert.Zero(t, sys.openCount())
	})

	t.Run("With close failures", func(t *testing.T) {
		sys := newFakeSystem()
		sys.closeErr = errors.New("bad file descriptor")
		binder := newTestBinder(sys)
		container := NewContainer()
		container.Append(Socket{Fd: 3, Addr: mkAddr(t, "10.0.0.1", 9000), Port: 9000})
		container.Append(Socket{Fd: 4, Addr: mkAddr(t, "10.0.0.2", 9000), Port: 9000})

		err := binder.Teardown(container)
		require.Error(t, err)
		// every socket is still attempted
		assert.Equal(t, 2, sys.closedCount())
		assert.Zero(t, container.Len())
	})
}
