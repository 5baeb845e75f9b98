// Package blob implements the lossless persisted form of a storage buffer.
//
// A blob is a 32-byte header (see the section package) followed by one
// payload. The payload holds every bin at the storage's current width,
// either as raw fixed-width elements or in a zero-suppressed run-length
// form; the encoder tries suppression first and falls back to raw whenever
// suppression does not shrink the data. A flag bit in the header records
// which form was written, so the decoder never guesses.
//
// The run-length grammar is an internal convention with no cross-version
// compatibility promise. For the integer widths it alternates a zero
// element with a same-width run length (1..max of the width; longer runs
// split); nonzero elements are written literally. For weighted storage an
// all-zero accumulator pair is followed by a uint64 run length.
//
// On top of the payload form the encoder can apply a general-purpose
// compression codec (Zstd, S2 or LZ4; see the compress package) and always
// records a CRC32-C checksum of the payload as written.
//
// Decoding is the exact inverse: it validates the magic number, checksum
// and selectors, reallocates the destination storage when the persisted
// (count, width) differ from its current shape, and reconstructs every bin.
package blob
