package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Sum hashes raw bytes.
func Sum(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// Combine строит составной хеш: H( content || salt1 || salt2 ... ).
// Порядок salts должен быть детерминированным.
func Combine(content Digest, salts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range salts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
