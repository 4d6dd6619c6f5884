// SPDX-License-Identifier: MIT

package runner

import "runtime"

// HeapProbe measures bytes allocated on the Go heap between Begin and End
// (runtime.MemStats.TotalAlloc). It sees only Go allocations; memory held
// by native code is invisible to it.
type HeapProbe struct{}

// Begin samples the allocation counter.
func (HeapProbe) Begin() any {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.TotalAlloc
}

// End returns the bytes allocated since Begin, or -1 for a foreign token.
func (HeapProbe) End(token any) int64 {
	start, ok := token.(uint64)
	if !ok {
		return -1
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return int64(ms.TotalAlloc - start)
}
