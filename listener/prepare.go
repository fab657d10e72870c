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

import "fmt"

// prepareSocket applies the full option set to a freshly created socket,
// binds it, starts listening and reads back the OS-assigned port. The
// descriptor is owned for cleanup until the final step succeeds: any early
// return closes it, so no failure path leaks a handle.
func (b *Binder) prepareSocket(opts Options, sock *Socket) error {
	fd := sock.Fd
	sock.Port = 0
	sock.ZeroCopy = false

	prepared := false
	defer func() {
		if !prepared {
			_ = b.sys.Close(fd)
		}
	}()

	isIP := sock.Addr.IsIP()
	if opts.ReusePort && isIP && b.sys.ReusePortSupported() {
		if err := b.sys.SetReusePort(fd); err != nil {
			return err
		}
	}

	if err := b.sys.SetZeroCopy(fd); err != nil {
		// cosmetic: the socket works without it
		b.logger.Debugf("zero-copy send not enabled for %s: %v", sock.Addr, err)
	} else {
		sock.ZeroCopy = true
	}

	if err := b.sys.SetNonBlocking(fd); err != nil {
		return err
	}
	if err := b.sys.SetCloseOnExec(fd); err != nil {
		return err
	}

	if isIP {
		if err := b.sys.SetLowLatency(fd); err != nil {
			return err
		}
		if err := b.sys.SetReuseAddr(fd); err != nil {
			return err
		}
		if opts.DSCP > 0 {
			if err := b.sys.SetDSCP(fd, sock.Addr.Family(), opts.DSCP); err != nil {
				return err
			}
		}
		if opts.UserTimeout > 0 {
			if err := b.sys.SetUserTimeout(fd, opts.UserTimeout); err != nil {
				b.logger.Debugf("TCP user timeout not applied for %s: %v", sock.Addr, err)
			}
		}
	}

	if err := b.sys.SetNoSigpipe(fd); err != nil {
		b.logger.Debugf("SIGPIPE suppression not enabled for %s: %v", sock.Addr, err)
	}

	if opts.SocketMutator != nil {
		if err := opts.SocketMutator(fd); err != nil {
			return fmt.Errorf("socket mutator: %w", err)
		}
	}

	if err := b.sys.Bind(fd, sock.Addr); err != nil {
		return fmt.Errorf("%w for address '%s': %v", ErrBind, sock.Addr, err)
	}

	if err := b.sys.Listen(fd, b.MaxAcceptQueueSize()); err != nil {
		return fmt.Errorf("%w: %v", ErrListen, err)
	}

	local, err := b.sys.LocalAddress(fd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQueryLocalName, err)
	}
	if local.IsIP() {
		sock.Port = int(local.Port())
	} else {
		// Unix-domain sockets carry no port; report 1 so a prepared
		// socket is always distinguishable from an unprepared one.
		sock.Port = 1
	}

	prepared = true
	return nil
}
