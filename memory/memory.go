// Package memory defines the byte-addressable sink assembled code is
// written to, plus a plain RAM implementation of it. Machine words are
// 32 bits, most significant byte first.
package memory

import "fmt"

// Memory is the byte-addressable store the code generator materializes
// output into. Implementations are expected to be backed by the target
// machine's address space.
type Memory interface {
	WriteByte(addr uint32, value uint8) error
	WriteWord(addr uint32, value uint32) error
	ReadByte(addr uint32) (uint8, error)
	ReadWord(addr uint32) (uint32, error)
}

// RAM is a fixed-size in-process Memory.
type RAM struct {
	data []byte
}

// NewRAM allocates a zeroed memory of the given size in bytes.
func NewRAM(size uint32) *RAM {
	return &RAM{data: make([]byte, size)}
}

// Size returns the addressable size in bytes.
func (m *RAM) Size() uint32 {
	return uint32(len(m.data))
}

func (m *RAM) WriteByte(addr uint32, value uint8) error {
	if addr >= uint32(len(m.data)) {
		return fmt.Errorf("write of byte at 0x%X outside memory of %d bytes", addr, len(m.data))
	}
	m.data[addr] = value
	return nil
}

// WriteWord stores a 32-bit word most significant byte first.
func (m *RAM) WriteWord(addr uint32, value uint32) error {
	if addr > uint32(len(m.data)) || uint32(len(m.data))-addr < 4 {
		return fmt.Errorf("write of word at 0x%X outside memory of %d bytes", addr, len(m.data))
	}
	m.data[addr] = byte(value >> 24)
	m.data[addr+1] = byte(value >> 16)
	m.data[addr+2] = byte(value >> 8)
	m.data[addr+3] = byte(value)
	return nil
}

func (m *RAM) ReadByte(addr uint32) (uint8, error) {
	if addr >= uint32(len(m.data)) {
		return 0, fmt.Errorf("read of byte at 0x%X outside memory of %d bytes", addr, len(m.data))
	}
	return m.data[addr], nil
}

func (m *RAM) ReadWord(addr uint32) (uint32, error) {
	if addr > uint32(len(m.data)) || uint32(len(m.data))-addr < 4 {
		return 0, fmt.Errorf("read of word at 0x%X outside memory of %d bytes", addr, len(m.data))
	}
	return uint32(m.data[addr])<<24 | uint32(m.data[addr+1])<<16 |
		uint32(m.data[addr+2])<<8 | uint32(m.data[addr+3]), nil
}

// Bytes returns the backing store. Intended for tests and dumps.
func (m *RAM) Bytes() []byte {
	return m.data
}
