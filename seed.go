package rlnc

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// DeriveSeed maps a shared key and a block number to a generator seed. Two
// endpoints holding the same key seed their coders identically for every
// block without sending the seed itself.
func DeriveSeed(key []byte, block uint64) uint32 {
	var in [8]byte
	binary.LittleEndian.PutUint64(in[:], block)
	// an oversized key is hashed first so the keyed mode always accepts it
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		panic(err) // unreachable: len(key) <= blake2b.Size
	}
	h.Write(in[:])
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint32(sum[:4])
}
