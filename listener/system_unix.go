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

//go:build linux || darwin

package listener

import (
	"fmt"
	"net"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/kinholt/listenkit/address"
)

// enforce compilation error
var _ System = (*posixSystem)(nil)

// posixSystem is the production System. It is stateless apart from the
// one-shot IPv4 availability probe, so a single instance serves the whole
// process.
type posixSystem struct {
	ipv4Once sync.Once
	ipv4OK   bool
}

var sharedSystem = &posixSystem{}

func defaultSystem() System {
	return sharedSystem
}

// NewSocket creates a stream socket for addr and reports its dual-stack
// mode. IPv6 targets get an AF_INET6 socket with IPV6_V6ONLY cleared; when
// clearing the option fails the socket still works but only for IPv6. When
// the platform has no IPv6 stack, IPv4-mapped and wildcard targets fall
// back to AF_INET.
func (s *posixSystem) NewSocket(addr address.ResolvedAddress) (int, DSMode, error) {
	switch addr.Family() {
	case address.FamilyIPv6:
		fd, err := unix.Socket(unix.AF_INET6, unix.SOCK_STREAM, 0)
		if err == nil {
			if err := unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0); err != nil {
				return fd, DSModeIPv6Only, nil
			}
			return fd, DSModeDualStack, nil
		}
		if _, mapped := addr.AsIPv4(); !mapped && !addr.IsWildcard() {
			return -1, DSModeNone, os.NewSyscallError("socket", err)
		}
		return s.newIPv4Socket()
	case address.FamilyIPv4:
		return s.newIPv4Socket()
	case address.FamilyUnix:
		fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
		if err != nil {
			return -1, DSModeNone, os.NewSyscallError("socket", err)
		}
		return fd, DSModeNone, nil
	default:
		return -1, DSModeNone, fmt.Errorf("unsupported address family %d", addr.Family())
	}
}

func (s *posixSystem) newIPv4Socket() (int, DSMode, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, DSModeNone, os.NewSyscallError("socket", err)
	}
	return fd, DSModeIPv4Only, nil
}

func (s *posixSystem) Bind(fd int, addr address.ResolvedAddress) error {
	sa, err := toSockaddr(addr)
	if err != nil {
		return err
	}
	return os.NewSyscallError("bind", unix.Bind(fd, sa))
}

func (s *posixSystem) Listen(fd int, backlog int) error {
	return os.NewSyscallError("listen", unix.Listen(fd, backlog))
}

func (s *posixSystem) LocalAddress(fd int) (address.ResolvedAddress, error) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return address.ResolvedAddress{}, os.NewSyscallError("getsockname", err)
	}
	return fromSockaddr(sa)
}

func (s *posixSystem) Close(fd int) error {
	return os.NewSyscallError("close", unix.Close(fd))
}

func (s *posixSystem) SetNonBlocking(fd int) error {
	return os.NewSyscallError("fcntl", unix.SetNonblock(fd, true))
}

func (s *posixSystem) SetCloseOnExec(fd int) error {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC)
	return os.NewSyscallError("fcntl", err)
}

func (s *posixSystem) ReusePortSupported() bool {
	return true
}

func (s *posixSystem) SetReusePort(fd int) error {
	return os.NewSyscallError("setsockopt",
		unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1))
}

func (s *posixSystem) SetReuseAddr(fd int) error {
	return os.NewSyscallError("setsockopt",
		unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1))
}

func (s *posixSystem) SetLowLatency(fd int) error {
	return os.NewSyscallError("setsockopt",
		unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1))
}

// SetDSCP writes the code point into the traffic-class bits of the family's
// TOS field. The DSCP occupies the top six bits.
func (s *posixSystem) SetDSCP(fd int, family address.Family, dscp int) error {
	value := dscp << 2
	switch family {
	case address.FamilyIPv4:
		return os.NewSyscallError("setsockopt",
			unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_TOS, value))
	case address.FamilyIPv6:
		return os.NewSyscallError("setsockopt",
			unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_TCLASS, value))
	default:
		return nil
	}
}

func (s *posixSystem) HasInterfaceAddresses() bool {
	return true
}

// InterfaceAddresses walks all local interfaces and returns their IP
// addresses with port 0. Non-IP entries are skipped.
func (s *posixSystem) InterfaceAddresses() ([]address.ResolvedAddress, error) {
	ifaddrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	out := make([]address.ResolvedAddress, 0, len(ifaddrs))
	for _, ifaddr := range ifaddrs {
		var ip net.IP
		switch v := ifaddr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		default:
			continue
		}
		addr, err := address.FromIP(ip, 0)
		if err != nil {
			continue
		}
		out = append(out, addr)
	}
	return out, nil
}

// IPv4Available probes once whether the kernel can create IPv4 sockets at
// all. A throwaway datagram socket keeps the probe side-effect free.
func (s *posixSystem) IPv4Available() bool {
	s.ipv4Once.Do(func() {
		fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
		if err == nil {
			_ = unix.Close(fd)
		}
		s.ipv4OK = err == nil
	})
	return s.ipv4OK
}

func toSockaddr(addr address.ResolvedAddress) (unix.Sockaddr, error) {
	switch addr.Family() {
	case address.FamilyIPv4:
		sa := &unix.SockaddrInet4{Port: int(addr.Port())}
		copy(sa.Addr[:], addr.IP())
		return sa, nil
	case address.FamilyIPv6:
		sa := &unix.SockaddrInet6{Port: int(addr.Port()), ZoneId: addr.Zone()}
		copy(sa.Addr[:], addr.IP())
		return sa, nil
	case address.FamilyUnix:
		return &unix.SockaddrUnix{Name: addr.Path()}, nil
	default:
		return nil, fmt.Errorf("unsupported address family %d", addr.Family())
	}
}

func fromSockaddr(sa unix.Sockaddr) (address.ResolvedAddress, error) {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return address.NewIPv4(net.IP(v.Addr[:]), uint16(v.Port))
	case *unix.SockaddrInet6:
		return address.NewIPv6(net.IP(v.Addr[:]), uint16(v.Port), v.ZoneId)
	case *unix.SockaddrUnix:
		return address.NewUnix(v.Name)
	default:
		return address.ResolvedAddress{}, fmt.Errorf("unsupported sockaddr type %T", sa)
	}
}
