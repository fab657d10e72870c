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

//go:build darwin

package listener

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// SetZeroCopy reports the capability as absent; Darwin has no SO_ZEROCOPY.
// Callers treat the failure as cosmetic.
func (s *posixSystem) SetZeroCopy(fd int) error {
	return errors.New("zero-copy send is not available on darwin")
}

func (s *posixSystem) SetNoSigpipe(fd int) error {
	return os.NewSyscallError("setsockopt",
		unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1))
}

// SetUserTimeout reports the capability as absent; Darwin has no
// TCP_USER_TIMEOUT. Callers treat the failure as cosmetic.
func (s *posixSystem) SetUserTimeout(fd int, timeout time.Duration) error {
	return errors.New("TCP user timeout is not available on darwin")
}

// MaxListenBacklog reads the kern.ipc.somaxconn sysctl, falling back to the
// compile-time SOMAXCONN.
func (s *posixSystem) MaxListenBacklog() (int, error) {
	n, err := unix.SysctlUint32("kern.ipc.somaxconn")
	if err != nil || n == 0 {
		return unix.SOMAXCONN, nil
	}
	return int(n), nil
}
