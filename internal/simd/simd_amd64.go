//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasAVX2 {
		classifyImpl = classifyAVX2Path
		activePath = "avx2"
	} else {
		classifyImpl = classifyGeneric
		activePath = "generic"
	}
}

// classifyAVX2Path is the route taken on CPUs that report AVX2 support.
// It produces byte-identical bitmaps to classifyGeneric; the dispatch
// exists so the diagnostics banner can report the detected capability
// without depending on a hand-written assembly kernel (see DESIGN.md).
func classifyAVX2Path(buf []byte, headerMask, nonACGTMask []uint64) {
	classifyGeneric(buf, headerMask, nonACGTMask)
}
