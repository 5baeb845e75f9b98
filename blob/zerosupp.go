package blob

import (
	"math"

	"github.com/arloliu/nhist/endian"
	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/format"
	"github.com/arloliu/nhist/internal/pool"
	"github.com/arloliu/nhist/storage"
)

// maxRunFor returns the largest run length encodable in one element of the
// given width. Longer runs of zero bins split into multiple pairs.
func maxRunFor(w format.WidthType) uint64 {
	switch w {
	case format.WidthUint8:
		return math.MaxUint8
	case format.WidthUint16:
		return math.MaxUint16
	case format.WidthUint32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

func appendElem(buf *pool.ByteBuffer, engine endian.EndianEngine, w format.WidthType, v uint64) {
	switch w {
	case format.WidthUint8:
		buf.B = append(buf.B, uint8(v))
	case format.WidthUint16:
		buf.B = engine.AppendUint16(buf.B, uint16(v))
	case format.WidthUint32:
		buf.B = engine.AppendUint32(buf.B, uint32(v))
	default:
		buf.B = engine.AppendUint64(buf.B, v)
	}
}

func readElem(p []byte, engine endian.EndianEngine, w format.WidthType) uint64 {
	switch w {
	case format.WidthUint8:
		return uint64(p[0])
	case format.WidthUint16:
		return uint64(engine.Uint16(p))
	case format.WidthUint32:
		return uint64(engine.Uint32(p))
	default:
		return engine.Uint64(p)
	}
}

// encodeRaw writes every bin of s as a fixed-width element.
func encodeRaw(s *storage.Storage, engine endian.EndianEngine, buf *pool.ByteBuffer) {
	count := s.Len()
	width := s.Width()
	buf.Grow(count * width.ElemSize())

	if width == format.WidthWeighted {
		for i := 0; i < count; i++ {
			sum, sos := s.WeightedAt(i)
			buf.B = engine.AppendUint64(buf.B, math.Float64bits(sum))
			buf.B = engine.AppendUint64(buf.B, math.Float64bits(sos))
		}

		return
	}

	for i := 0; i < count; i++ {
		appendElem(buf, engine, width, s.IntAt(i))
	}
}

// encodeSuppressed writes the zero-suppressed run-length form of s into buf.
// It reports false, leaving buf in an undefined state, as soon as the form
// reaches the raw payload size; the caller then falls back to encodeRaw.
func encodeSuppressed(s *storage.Storage, engine endian.EndianEngine, buf *pool.ByteBuffer) bool {
	width := s.Width()
	rawSize := s.Len() * width.ElemSize()
	if rawSize == 0 {
		return false
	}
	if width == format.WidthWeighted {
		return encodeSuppressedWeighted(s, engine, buf, rawSize)
	}

	return encodeSuppressedInt(s, engine, buf, rawSize)
}

func encodeSuppressedInt(s *storage.Storage, engine endian.EndianEngine, buf *pool.ByteBuffer, rawSize int) bool {
	width := s.Width()
	maxRun := maxRunFor(width)
	count := s.Len()

	for i := 0; i < count; {
		if v := s.IntAt(i); v != 0 {
			appendElem(buf, engine, width, v)
			i++
		} else {
			run := uint64(1)
			i++
			for i < count && run < maxRun && s.IntAt(i) == 0 {
				run++
				i++
			}
			appendElem(buf, engine, width, 0)
			appendElem(buf, engine, width, run)
		}
		if buf.Len() >= rawSize {
			return false
		}
	}

	return true
}

func encodeSuppressedWeighted(s *storage.Storage, engine endian.EndianEngine, buf *pool.ByteBuffer, rawSize int) bool {
	count := s.Len()

	for i := 0; i < count; {
		sum, sos := s.WeightedAt(i)
		sb, qb := math.Float64bits(sum), math.Float64bits(sos)
		if sb != 0 || qb != 0 {
			buf.B = engine.AppendUint64(buf.B, sb)
			buf.B = engine.AppendUint64(buf.B, qb)
			i++
		} else {
			run := uint64(1)
			i++
			for i < count {
				sum, sos = s.WeightedAt(i)
				if math.Float64bits(sum) != 0 || math.Float64bits(sos) != 0 {
					break
				}
				run++
				i++
			}
			buf.B = engine.AppendUint64(buf.B, 0)
			buf.B = engine.AppendUint64(buf.B, 0)
			buf.B = engine.AppendUint64(buf.B, run)
		}
		if buf.Len() >= rawSize {
			return false
		}
	}

	return true
}

// decodeRaw reconstructs dst from a raw fixed-width payload. dst is already
// zeroed at the persisted count and width.
func decodeRaw(dst *storage.Storage, engine endian.EndianEngine, payload []byte) error {
	count := dst.Len()
	width := dst.Width()
	elem := width.ElemSize()
	if len(payload) != count*elem {
		return errs.ErrInvalidPayload
	}

	if width == format.WidthWeighted {
		for i := 0; i < count; i++ {
			p := payload[i*16:]
			dst.SetWeightedAt(i,
				math.Float64frombits(engine.Uint64(p[0:8])),
				math.Float64frombits(engine.Uint64(p[8:16])),
			)
		}

		return nil
	}

	for i := 0; i < count; i++ {
		dst.SetIntAt(i, readElem(payload[i*elem:], engine, width))
	}

	return nil
}

// decodeSuppressed reconstructs dst from the run-length payload. dst is
// already zeroed at the persisted count and width, so zero runs only
// advance the bin cursor.
func decodeSuppressed(dst *storage.Storage, engine endian.EndianEngine, payload []byte) error {
	count := dst.Len()
	width := dst.Width()
	if width == format.WidthWeighted {
		return decodeSuppressedWeighted(dst, engine, payload)
	}

	elem := width.ElemSize()
	i := 0
	for off := 0; off < len(payload); {
		if i >= count || off+elem > len(payload) {
			return errs.ErrInvalidPayload
		}
		v := readElem(payload[off:], engine, width)
		off += elem
		if v != 0 {
			dst.SetIntAt(i, v)
			i++

			continue
		}
		if off+elem > len(payload) {
			return errs.ErrInvalidPayload
		}
		run := readElem(payload[off:], engine, width)
		off += elem
		if run == 0 || run > uint64(count-i) {
			return errs.ErrInvalidPayload
		}
		i += int(run)
	}
	if i != count {
		return errs.ErrInvalidPayload
	}

	return nil
}

func decodeSuppressedWeighted(dst *storage.Storage, engine endian.EndianEngine, payload []byte) error {
	count := dst.Len()
	i := 0
	for off := 0; off < len(payload); {
		if i >= count || off+16 > len(payload) {
			return errs.ErrInvalidPayload
		}
		sb := engine.Uint64(payload[off : off+8])
		qb := engine.Uint64(payload[off+8 : off+16])
		off += 16
		if sb != 0 || qb != 0 {
			dst.SetWeightedAt(i, math.Float64frombits(sb), math.Float64frombits(qb))
			i++

			continue
		}
		if off+8 > len(payload) {
			return errs.ErrInvalidPayload
		}
		run := engine.Uint64(payload[off : off+8])
		off += 8
		if run == 0 || run > uint64(count-i) {
			return errs.ErrInvalidPayload
		}
		i += int(run)
	}
	if i != count {
		return errs.ErrInvalidPayload
	}

	return nil
}
