package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Combine folds a sequence of string parts into one xxHash64 digest.
//
// Each part is fed into the digest with a single-byte separator so that
// ("ab", "c") and ("a", "bc") produce different fingerprints. It is used to
// derive a stable fingerprint for one axis configuration.
func Combine(parts ...string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0x1f})
	}

	return d.Sum64()
}

// CombineIDs folds a sequence of 64-bit IDs into one xxHash64 digest.
//
// The fold is order sensitive. It is used to derive the fingerprint of an
// ordered axis set from the per-axis fingerprints.
func CombineIDs(ids ...uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, id := range ids {
		buf[0] = byte(id)
		buf[1] = byte(id >> 8)
		buf[2] = byte(id >> 16)
		buf[3] = byte(id >> 24)
		buf[4] = byte(id >> 32)
		buf[5] = byte(id >> 40)
		buf[6] = byte(id >> 48)
		buf[7] = byte(id >> 56)
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}
