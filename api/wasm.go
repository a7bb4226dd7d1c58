// Package api includes the types and interfaces a WASI host embedder needs
// to supply to and consume from this module.
package api

// Memory is a typed view over a guest's linear memory buffer. Every WASI
// entry point decodes its pointer arguments through a Memory, never through
// a raw []byte, so that offset and bounds checking happen in one place.
//
// # Notes
//
//   - All multi-byte values are little-endian, matching the WebAssembly
//     Core Specification.
//   - Implementations must re-derive the backing buffer on each call: the
//     guest may grow its memory between syscalls, which can move or extend
//     the backing storage.
type Memory interface {
	// Size returns the size in bytes available.
	Size() uint32

	// ReadByte reads a single byte at the offset, or returns false if out
	// of range.
	ReadByte(offset uint32) (byte, bool)

	// ReadUint16Le reads a little-endian uint16 at the offset, or returns
	// false if out of range.
	ReadUint16Le(offset uint32) (uint16, bool)

	// ReadUint32Le reads a little-endian uint32 at the offset, or returns
	// false if out of range.
	ReadUint32Le(offset uint32) (uint32, bool)

	// ReadUint64Le reads a little-endian uint64 at the offset, or returns
	// false if out of range.
	ReadUint64Le(offset uint32) (uint64, bool)

	// Read reads byteCount bytes at the offset, or returns false if out of
	// range.
	//
	// # Write-through
	//
	// This returns a view of the underlying memory, not a copy. Writes to
	// the returned slice are visible to the guest, and writes from the
	// guest are visible reading the returned slice again. Callers who need
	// a stable snapshot must copy it.
	Read(offset, byteCount uint32) ([]byte, bool)

	// WriteByte writes a single byte at the offset, or returns false if out
	// of range.
	WriteByte(offset uint32, v byte) bool

	// WriteUint32Le writes v in little-endian encoding at the offset, or
	// returns false if out of range.
	WriteUint32Le(offset, v uint32) bool

	// WriteUint64Le writes v in little-endian encoding at the offset, or
	// returns false if out of range.
	WriteUint64Le(offset uint32, v uint64) bool

	// Write writes v at the offset, or returns false if out of range.
	Write(offset uint32, v []byte) bool
}
