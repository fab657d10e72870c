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

// Package address provides a compact, comparable representation of socket
// addresses for listener bring-up: IPv4 and IPv6 endpoints with their port,
// plus Unix-domain paths. A ResolvedAddress is an immutable value; two
// addresses naming the same endpoint are equal with ==, which is what the
// listener container relies on to suppress duplicate interface bindings.
package address

import (
	"encoding/binary"
	"errors"
	"net"
	"strconv"
	"strings"
)

// Family identifies the address family carried by a ResolvedAddress.
type Family uint8

const (
	// FamilyNone is the zero value; no address is stored.
	FamilyNone Family = iota
	// FamilyIPv4 is an IPv4 endpoint with a port.
	FamilyIPv4
	// FamilyIPv6 is an IPv6 endpoint with a port and an optional scope id.
	FamilyIPv6
	// FamilyUnix is a Unix-domain socket path, possibly abstract.
	FamilyUnix
)

// Size is the capacity of the backing buffer of a ResolvedAddress. It is
// large enough for any supported family, including the longest Unix path.
const Size = 128

// maxUnixPath is the longest Unix-domain socket path that can be stored,
// matching the kernel's sun_path limit.
const maxUnixPath = 108

var (
	// ErrInvalidAddress is returned when an IP does not fit the requested family.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrPathTooLong is returned when a Unix-domain path exceeds the kernel limit.
	ErrPathTooLong = errors.New("unix path too long")
)

// ResolvedAddress is a socket address in a canonical fixed-capacity byte
// form. The layout is: byte 0 holds the family; for IP families bytes 1..2
// hold the port in network order followed by the raw IP bytes (and, for
// IPv6, a 4-byte scope id); for Unix addresses the path bytes follow the
// family byte. Unused capacity is always zero, so == compares endpoints.
//
// A ResolvedAddress never owns an OS handle and is immutable once built;
// WithPort returns a modified copy.
type ResolvedAddress struct {
	raw [Size]byte
	n   uint8
}

const (
	portOff = 1
	ipOff   = 3
	v4Len   = 7  // family + port + 4 address bytes
	zoneOff = 19 // after the 16 IPv6 address bytes
	v6Len   = 23 // family + port + 16 address bytes + zone
	unixOff = 1
)

// NewIPv4 builds an IPv4 address. The ip must be representable in 4 bytes.
func NewIPv4(ip net.IP, port uint16) (ResolvedAddress, error) {
	ip4 := ip.To4()
	if ip4 == nil {
		return ResolvedAddress{}, ErrInvalidAddress
	}
	var b [4]byte
	copy(b[:], ip4)
	return newIPv4(b, port), nil
}

// NewIPv6 builds an IPv6 address with an optional scope id.
func NewIPv6(ip net.IP, port uint16, zone uint32) (ResolvedAddress, error) {
	ip16 := ip.To16()
	if ip16 == nil {
		return ResolvedAddress{}, ErrInvalidAddress
	}
	var b [16]byte
	copy(b[:], ip16)
	return newIPv6(b, port, zone), nil
}

// NewUnix builds a Unix-domain address. Abstract-namespace names start with
// a NUL byte, exactly as the kernel sees them.
func NewUnix(path string) (ResolvedAddress, error) {
	if len(path) > maxUnixPath {
		return ResolvedAddress{}, ErrPathTooLong
	}
	var a ResolvedAddress
	a.raw[0] = byte(FamilyUnix)
	copy(a.raw[unixOff:], path)
	a.n = uint8(unixOff + len(path))
	return a, nil
}

// FromIP builds an address from a generic net.IP, selecting IPv4 when the
// IP is representable in 4 bytes.
func FromIP(ip net.IP, port uint16) (ResolvedAddress, error) {
	if ip4 := ip.To4(); ip4 != nil {
		return NewIPv4(ip4, port)
	}
	return NewIPv6(ip, port, 0)
}

// FromTCPAddr converts a net.TCPAddr. Interface scope names are dropped;
// only numeric scope ids survive the conversion.
func FromTCPAddr(addr *net.TCPAddr) (ResolvedAddress, error) {
	if addr == nil || addr.IP == nil {
		return ResolvedAddress{}, ErrInvalidAddress
	}
	var zone uint32
	if addr.Zone != "" {
		if id, err := strconv.ParseUint(addr.Zone, 10, 32); err == nil {
			zone = uint32(id)
		}
	}
	if ip4 := addr.IP.To4(); ip4 != nil {
		return NewIPv4(ip4, uint16(addr.Port))
	}
	return NewIPv6(addr.IP, uint16(addr.Port), zone)
}

func newIPv4(ip [4]byte, port uint16) ResolvedAddress {
	var a ResolvedAddress
	a.raw[0] = byte(FamilyIPv4)
	binary.BigEndian.PutUint16(a.raw[portOff:], port)
	copy(a.raw[ipOff:], ip[:])
	a.n = v4Len
	return a
}

func newIPv6(ip [16]byte, port uint16, zone uint32) ResolvedAddress {
	var a ResolvedAddress
	a.raw[0] = byte(FamilyIPv6)
	binary.BigEndian.PutUint16(a.raw[portOff:], port)
	copy(a.raw[ipOff:], ip[:])
	binary.BigEndian.PutUint32(a.raw[zoneOff:], zone)
	a.n = v6Len
	return a
}

// Family returns the address family.
func (a ResolvedAddress) Family() Family {
	return Family(a.raw[0])
}

// IsIP reports whether the address is an IPv4 or IPv6 endpoint.
func (a ResolvedAddress) IsIP() bool {
	f := a.Family()
	return f == FamilyIPv4 || f == FamilyIPv6
}

// Port returns the port for IP families and 0 otherwise.
func (a ResolvedAddress) Port() uint16 {
	if !a.IsIP() {
		return 0
	}
	return binary.BigEndian.Uint16(a.raw[portOff:])
}

// WithPort returns a copy of the address carrying the given port. For
// non-IP families the address is returned unchanged.
func (a ResolvedAddress) WithPort(port uint16) ResolvedAddress {
	if !a.IsIP() {
		return a
	}
	binary.BigEndian.PutUint16(a.raw[portOff:], port)
	return a
}

// IP returns the IP bytes for IP families and nil otherwise.
func (a ResolvedAddress) IP() net.IP {
	switch a.Family() {
	case FamilyIPv4:
		return net.IP(a.raw[ipOff : ipOff+4 : ipOff+4])
	case FamilyIPv6:
		return net.IP(a.raw[ipOff : ipOff+16 : ipOff+16])
	default:
		return nil
	}
}

// Zone returns the IPv6 scope id, or 0 for other families.
func (a ResolvedAddress) Zone() uint32 {
	if a.Family() != FamilyIPv6 {
		return 0
	}
	return binary.BigEndian.Uint32(a.raw[zoneOff:])
}

// Path returns the Unix-domain path, or "" for other families.
func (a ResolvedAddress) Path() string {
	if a.Family() != FamilyUnix {
		return ""
	}
	return string(a.raw[unixOff:a.n])
}

// IsWildcard reports whether an IP address is the all-zeros address of its
// family ("0.0.0.0" or "::").
func (a ResolvedAddress) IsWildcard() bool {
	ip := a.IP()
	if ip == nil {
		return false
	}
	for _, b := range ip {
		if b != 0 {
			return false
		}
	}
	return true
}

// AsIPv4 collapses an IPv4-mapped IPv6 address ("::ffff:a.b.c.d") to its
// plain IPv4 form, keeping the port. The second return is false when the
// address is not IPv4-mapped.
func (a ResolvedAddress) AsIPv4() (ResolvedAddress, bool) {
	if a.Family() != FamilyIPv6 {
		return ResolvedAddress{}, false
	}
	ip := a.raw[ipOff : ipOff+16]
	for _, b := range ip[:10] {
		if b != 0 {
			return ResolvedAddress{}, false
		}
	}
	if ip[10] != 0xff || ip[11] != 0xff {
		return ResolvedAddress{}, false
	}
	var b [4]byte
	copy(b[:], ip[12:16])
	return newIPv4(b, a.Port()), true
}

// Equal reports byte-for-byte equality. Since ResolvedAddress is a
// comparable value type, a == b is equivalent.
func (a ResolvedAddress) Equal(other ResolvedAddress) bool {
	return a == other
}

// String renders the address in a loggable form: "ip:port" with the usual
// bracketing for IPv6. NUL bytes in Unix-domain paths are rendered as '@'
// so abstract-namespace names remain printable.
func (a ResolvedAddress) String() string {
	switch a.Family() {
	case FamilyIPv4, FamilyIPv6:
		host := a.IP().String()
		if zone := a.Zone(); zone != 0 {
			host += "%" + strconv.FormatUint(uint64(zone), 10)
		}
		return net.JoinHostPort(host, strconv.Itoa(int(a.Port())))
	case FamilyUnix:
		return strings.ReplaceAll(a.Path(), "\x00", "@")
	default:
		return "<none>"
	}
}
