// Package errs defines the sentinel errors shared across nhist packages.
//
// All errors are plain sentinels created with errors.New, intended to be
// matched with errors.Is. Call sites add context with fmt.Errorf and %w.
package errs

import "errors"

var (
	// ErrArgumentCount indicates that the number of axis values passed to a
	// fill or strict access does not match the histogram rank.
	ErrArgumentCount = errors.New("number of arguments does not match histogram rank")

	// ErrIndexOutOfRange indicates a strict indexed access outside the bins
	// of at least one axis.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrAxesMismatch indicates an attempt to merge histograms whose axis
	// configurations differ.
	ErrAxesMismatch = errors.New("axis configurations differ")

	// ErrAxisRequired indicates a histogram construction with no axes.
	ErrAxisRequired = errors.New("at least one axis required")

	// ErrInvalidAxisConfig indicates invalid axis construction parameters.
	ErrInvalidAxisConfig = errors.New("invalid axis configuration")

	// ErrStorageSizeMismatch indicates an element-wise merge of storages
	// with different bin counts.
	ErrStorageSizeMismatch = errors.New("storage bin counts differ")

	// ErrInvalidHeaderSize indicates a blob header shorter than the fixed
	// header size.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber indicates a blob that does not carry the nhist
	// magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderFlags indicates a header with an unknown width or
	// compression selector.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")

	// ErrInvalidPayload indicates a blob payload that is truncated or does
	// not decode to the bin count declared in the header.
	ErrInvalidPayload = errors.New("invalid blob payload")

	// ErrChecksumMismatch indicates a payload whose CRC32 checksum does not
	// match the header.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrAxesFingerprintMismatch indicates a blob encoded from a histogram
	// with a different axis configuration than the decode target.
	ErrAxesFingerprintMismatch = errors.New("axes fingerprint mismatch")
)
