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

//go:build !linux && !darwin

package listener

import (
	"time"

	"github.com/kinholt/listenkit/address"
)

// unsupportedSystem is the System for platforms without raw socket support.
// Every operation reports ErrUnsupported so callers get a recoverable error
// instead of a process abort.
type unsupportedSystem struct{}

// enforce compilation error
var _ System = unsupportedSystem{}

func defaultSystem() System {
	return unsupportedSystem{}
}

func (unsupportedSystem) NewSocket(address.ResolvedAddress) (int, DSMode, error) {
	return -1, DSModeNone, ErrUnsupported
}
func (unsupportedSystem) Bind(int, address.ResolvedAddress) error { return ErrUnsupported }
func (unsupportedSystem) Listen(int, int) error { return ErrUnsupported }
func (unsupportedSystem) LocalAddress(int) (address.ResolvedAddress, error) {
	return address.ResolvedAddress{}, ErrUnsupported
}
func (unsupportedSystem) Close(int) error { return ErrUnsupported }
func (unsupportedSystem) SetNonBlocking(int) error { return ErrUnsupported }
func (unsupportedSystem) SetCloseOnExec(int) error { return ErrUnsupported }
func (unsupportedSystem) ReusePortSupported() bool { return false }
func (unsupportedSystem) SetReusePort(int) error { return ErrUnsupported }
func (unsupportedSystem) SetReuseAddr(int) error { return ErrUnsupported }
func (unsupportedSystem) SetLowLatency(int) error { return ErrUnsupported }
func (unsupportedSystem) SetDSCP(int, address.Family, int) error { return ErrUnsupported }
func (unsupportedSystem) SetZeroCopy(int) error { return ErrUnsupported }
func (unsupportedSystem) SetNoSigpipe(int) error { return ErrUnsupported }
func (unsupportedSystem) SetUserTimeout(int, time.Duration) error { return ErrUnsupported }
func (unsupportedSystem) HasInterfaceAddresses() bool { return false }
func (unsupportedSystem) InterfaceAddresses() ([]address.ResolvedAddress, error) {
	return nil, ErrUnsupported
}
func (unsupportedSystem) IPv4Available() bool { return false }
func (unsupportedSystem) MaxListenBacklog() (int, error) {
	return 0, ErrUnsupported
}
