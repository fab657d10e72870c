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

package address

import "encoding/binary"

// v6LinkLocalPrefix is fe80::/10 expressed as the first 32 bits of the
// address with the low 22 bits cleared.
const v6LinkLocalPrefix = 0xfe800000

// v6LinkLocalMask keeps the top 10 bits of the first 32-bit word.
const v6LinkLocalMask = ^uint32(1<<22 - 1)

// IsLinkLocal reports whether an address is only valid on its local network
// segment: 169.254.0.0/16 for IPv4, fe80::/10 for IPv6. Non-IP families are
// never link-local.
func IsLinkLocal(a ResolvedAddress) bool {
	switch a.Family() {
	case FamilyIPv4:
		ip := a.IP()
		return ip[0] == 169 && ip[1] == 254
	case FamilyIPv6:
		first := binary.BigEndian.Uint32(a.IP()[:4])
		return first&v6LinkLocalMask == v6LinkLocalPrefix
	default:
		return false
	}
}
