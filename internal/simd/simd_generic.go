//go:build !amd64

package simd

func init() {
	classifyImpl = classifyGeneric
	activePath = "generic"
}
