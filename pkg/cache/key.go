// Package cache provides a content-addressed, keyed persistent store that
// memoises each evaluator stage so re-runs do only necessary work.
//
// Keys are 9 bytes: one tag byte chosen by the caller (distinguishing
// action classes) followed by an 8-byte big-endian hash digest of an
// ordered sequence of typed writes. The hash uses xxhash64 with a fixed
// seed so keys are reproducible across processes (spec §3, CacheKey).
package cache

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// keySeed fixes the xxhash seed so that CacheKey values are reproducible
// across processes and releases of the hash algorithm itself.
const keySeed = uint64(0x666967786b6579)

// KeyLen is the length in bytes of a CacheKey: one tag byte plus an 8-byte
// digest.
const KeyLen = 9

// CacheKey is an opaque 9-byte identifier: a tag byte (the action class)
// followed by an 8-byte digest of the builder's write sequence. Tag bytes
// partition the key space by action class and appear as the first byte of
// the stored key, enabling cheap scanning by class.
type CacheKey [KeyLen]byte

// Tag returns the caller-chosen class byte that begins the key.
func (k CacheKey) Tag() byte { return k[0] }

// String renders the key as hex, e.g. "2a-1122334455667788".
func (k CacheKey) String() string {
	return hex.EncodeToString(k[:1]) + "-" + hex.EncodeToString(k[1:])
}

// Bytes returns the raw 9-byte key.
func (k CacheKey) Bytes() []byte { return k[:] }

// Builder accumulates an ordered sequence of typed writes and produces a
// CacheKey from them. Same writes in the same order produce the same key;
// a different sequence (different values, different order, or different
// types) produces a different key with overwhelming probability — this is
// the property spec §8 calls out for testing.
type Builder struct {
	tag byte
	buf []byte
}

// NewBuilder starts a new key builder. The tag is stamped as the first byte
// of the resulting key regardless of the writes that follow.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetTag sets the class tag byte for the key under construction and
// returns the builder for chaining.
func (b *Builder) SetTag(tag byte) *Builder {
	b.tag = tag
	return b
}

func (b *Builder) writeByte(typeTag byte, data []byte) *Builder {
	b.buf = append(b.buf, typeTag)
	b.buf = append(b.buf, data...)
	return b
}

// Type discriminant bytes prefixing each write, so that e.g. WriteU8(1)
// followed by WriteU8(2) cannot collide with WriteU16(0x0102) despite
// sharing underlying bytes.
const (
	typeU8 byte = iota
	typeU16
	typeU32
	typeU64
	typeU128
	typeUsize
	typeI8
	typeI16
	typeI32
	typeI64
	typeStr
	typeBytes
	typeBool
)

// WriteU8 appends a uint8 write to the sequence.
func (b *Builder) WriteU8(v uint8) *Builder { return b.writeByte(typeU8, []byte{v}) }

// WriteU16 appends a uint16 write (big-endian) to the sequence.
func (b *Builder) WriteU16(v uint16) *Builder {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return b.writeByte(typeU16, tmp[:])
}

// WriteU32 appends a uint32 write (big-endian) to the sequence.
func (b *Builder) WriteU32(v uint32) *Builder {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return b.writeByte(typeU32, tmp[:])
}

// WriteU64 appends a uint64 write (big-endian) to the sequence.
func (b *Builder) WriteU64(v uint64) *Builder {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return b.writeByte(typeU64, tmp[:])
}

// WriteU128 appends a 128-bit value, given as two uint64 halves
// (high, low), to the sequence.
func (b *Builder) WriteU128(hi, lo uint64) *Builder {
	var tmp [16]byte
	binary.BigEndian.PutUint64(tmp[:8], hi)
	binary.BigEndian.PutUint64(tmp[8:], lo)
	return b.writeByte(typeU128, tmp[:])
}

// WriteUsize appends a platform-width unsigned integer, encoded as a
// fixed 8-byte big-endian value for cross-process reproducibility.
func (b *Builder) WriteUsize(v uint64) *Builder {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return b.writeByte(typeUsize, tmp[:])
}

// WriteI64 appends a signed 64-bit write to the sequence.
func (b *Builder) WriteI64(v int64) *Builder {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(v))
	return b.writeByte(typeI64, tmp[:])
}

// WriteI32 appends a signed 32-bit write to the sequence.
func (b *Builder) WriteI32(v int32) *Builder {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(v))
	return b.writeByte(typeI32, tmp[:])
}

// WriteStr appends a UTF-8 string write, length-prefixed so that
// WriteStr("ab").WriteStr("c") cannot collide with WriteStr("a").WriteStr("bc").
func (b *Builder) WriteStr(s string) *Builder {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(s)))
	b.buf = append(b.buf, typeStr)
	b.buf = append(b.buf, lenBuf[:]...)
	b.buf = append(b.buf, s...)
	return b
}

// WriteBytes appends a length-prefixed raw byte slice write.
func (b *Builder) WriteBytes(data []byte) *Builder {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(data)))
	b.buf = append(b.buf, typeBytes)
	b.buf = append(b.buf, lenBuf[:]...)
	b.buf = append(b.buf, data...)
	return b
}

// WriteBool appends a boolean write to the sequence.
func (b *Builder) WriteBool(v bool) *Builder {
	if v {
		return b.writeByte(typeBool, []byte{1})
	}
	return b.writeByte(typeBool, []byte{0})
}

// WriteStrings appends a length-prefixed sequence of strings, each
// individually length-prefixed, preserving order sensitivity.
func (b *Builder) WriteStrings(ss []string) *Builder {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(ss)))
	b.buf = append(b.buf, typeU64)
	b.buf = append(b.buf, lenBuf[:]...)
	for _, s := range ss {
		b.WriteStr(s)
	}
	return b
}

// Build finalises the builder into a CacheKey: byte 0 is the tag set via
// SetTag, bytes 1-8 are the big-endian xxhash64 digest (fixed seed) of the
// accumulated write sequence.
func (b *Builder) Build() CacheKey {
	var k CacheKey
	k[0] = b.tag
	digest := xxhash.NewWithSeed(keySeed)
	_, _ = digest.Write(b.buf)
	binary.BigEndian.PutUint64(k[1:], digest.Sum64())
	return k
}
