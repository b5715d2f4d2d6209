package field

import "sync"

// GF(2^8) arithmetic using log/antilog tables with primitive polynomial 0x11d
// and generator 0x02.

const (
	gf256Poly  = 0x11d
	gf256Order = 255
)

var (
	gfExp  [2 * gf256Order]byte
	gfLog  [256]byte
	gfOnce sync.Once
)

func gf256Init() {
	gfOnce.Do(func() {
		x := 1
		for i := 0; i < gf256Order; i++ {
			gfExp[i] = byte(x)
			gfLog[byte(x)] = byte(i)
			x <<= 1
			if x&0x100 != 0 {
				x ^= gf256Poly
			}
		}
		for i := gf256Order; i < len(gfExp); i++ {
			gfExp[i] = gfExp[i-gf256Order]
		}
	})
}

// Add returns a+b, which in characteristic 2 is XOR.
func (Binary8) Add(a, b byte) byte { return a ^ b }

// Mul returns a*b.
func (Binary8) Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	gf256Init()
	return gfExp[int(gfLog[a])+int(gfLog[b])]
}

// Inv returns the multiplicative inverse of a. Inv(0) is 0.
func (Binary8) Inv(a byte) byte {
	if a == 0 {
		return 0
	}
	gf256Init()
	return gfExp[gf256Order-int(gfLog[a])]
}

// MulAdd computes dst ^= a*src over the shorter of the two slices.
func (f Binary8) MulAdd(dst, src []byte, a byte) {
	if a == 0 {
		return
	}
	n := min(len(dst), len(src))
	if a == 1 {
		for i := 0; i < n; i++ {
			dst[i] ^= src[i]
		}
		return
	}
	for i := 0; i < n; i++ {
		dst[i] ^= f.Mul(a, src[i])
	}
}

// Rank returns the rank of the matrix whose rows are the given coefficient
// vectors, each holding width GF(2^8) elements. Rows shorter than width are
// treated as zero-padded. The input is not modified.
func Rank(rows [][]byte, width int) int {
	var f Binary8
	m := make([][]byte, len(rows))
	for i, r := range rows {
		m[i] = make([]byte, width)
		copy(m[i], r)
	}
	rank := 0
	for c := 0; c < width && rank < len(m); c++ {
		pivot := -1
		for r := rank; r < len(m); r++ {
			if m[r][c] != 0 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			continue
		}
		m[rank], m[pivot] = m[pivot], m[rank]
		inv := f.Inv(m[rank][c])
		for j := c; j < width; j++ {
			m[rank][j] = f.Mul(m[rank][j], inv)
		}
		for r := rank + 1; r < len(m); r++ {
			f.MulAdd(m[r], m[rank], m[r][c])
		}
		rank++
	}
	return rank
}
