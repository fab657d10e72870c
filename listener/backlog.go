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

const (
	// minSafeAcceptQueueSize is the threshold under which the discovered
	// backlog is suspiciously small. The value is still used; it is a
	// hint, not a correctness requirement.
	minSafeAcceptQueueSize = 100

	// fallbackAcceptQueueSize is the historical SOMAXCONN, used when the
	// platform exposes no readable backlog setting.
	fallbackAcceptQueueSize = 128
)

// MaxAcceptQueueSize returns the accept queue length used for every listen
// call. It is discovered from the platform once per Binder and never
// changes afterwards; concurrent first use is safe because recomputation
// would converge to the same value.
func (b *Binder) MaxAcceptQueueSize() int {
	b.backlogOnce.Do(func() {
		n, err := b.sys.MaxListenBacklog()
		if err != nil || n <= 0 {
			n = fallbackAcceptQueueSize
		}
		if n < minSafeAcceptQueueSize {
			b.logger.Warnf("suspiciously small accept queue (%d) will probably lead to connection drops", n)
		}
		b.backlog = n
	})
	return b.backlog
}
