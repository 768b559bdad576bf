// Package bitio packs and unpacks sub-byte fields atop a byte-oriented
// file, MSB-first, the way the LZSS and Huffman codecs above it expect.
package bitio

import (
	"os"

	"golang.org/x/sys/unix"
)

// Mode selects how the underlying file is opened and how residual bits
// are handled on Close.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
	ModeAppend
)

// BitFile is a byte-granular file handle augmented with an MSB-first bit
// accumulator. On write, bitBuffer holds the bits accumulated so far,
// left-aligned at the point they are flushed. On read, bitBuffer holds
// the most recently fetched byte and bitCount says how many of its
// low-order bits are still unconsumed.
type BitFile struct {
	file      *os.File
	bitBuffer byte
	bitCount  uint
	mode      Mode
	numOps    numTransfer
}

// Open opens name under mode and returns a handle bound to the host's
// detected endianness.
func Open(name string, mode Mode) (*BitFile, error) {
	var flags int
	switch mode {
	case ModeRead:
		flags = unix.O_RDONLY
	case ModeWrite:
		flags = unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC
	case ModeAppend:
		flags = unix.O_WRONLY | unix.O_CREAT | unix.O_APPEND
	default:
		return nil, ErrFileOpen
	}

	fd, err := unix.Open(name, flags, 0644)
	if err != nil {
		return nil, ErrFileOpen
	}
	return Wrap(os.NewFile(uintptr(fd), name), mode)
}

// Wrap adapts an already-open file into a bit-granular handle.
func Wrap(file *os.File, mode Mode) (*BitFile, error) {
	if file == nil {
		return nil, ErrNoEntity
	}
	return &BitFile{
		file:   file,
		mode:   mode,
		numOps: numTransferFor(hostEndianness()),
	}, nil
}

// Close flushes any residual write bits and closes the underlying file.
func (bf *BitFile) Close() error {
	if bf == nil || bf.file == nil {
		return ErrEndOfFile
	}
	if bf.mode != ModeRead {
		if err := bf.flushResidual(false); err != nil {
			return err
		}
	}
	err := bf.file.Close()
	bf.file = nil
	return err
}

// ToFile flushes any residual write bits and surrenders the underlying
// file without closing it.
func (bf *BitFile) ToFile() (*os.File, error) {
	if bf == nil || bf.file == nil {
		return nil, ErrEndOfFile
	}
	if bf.mode != ModeRead {
		if err := bf.flushResidual(false); err != nil {
			return nil, err
		}
	}
	f := bf.file
	bf.file = nil
	return f, nil
}

// ByteAlign returns the current bit accumulator and resets it to empty.
// On a write handle this flushes the partial byte to disk first; on a
// read handle it simply discards the unconsumed bits of the current
// byte.
func (bf *BitFile) ByteAlign() (byte, error) {
	if bf == nil || bf.file == nil {
		return 0, ErrEndOfFile
	}
	b := bf.bitBuffer
	if bf.mode != ModeRead {
		if err := bf.flushResidual(false); err != nil {
			return 0, err
		}
	}
	bf.bitBuffer = 0
	bf.bitCount = 0
	return b, nil
}

// FlushOutput force-emits any pending write bits, padding the spare
// low-order positions with ones when onesFill is true and zeros
// otherwise.
func (bf *BitFile) FlushOutput(onesFill bool) error {
	if bf == nil || bf.file == nil {
		return ErrEndOfFile
	}
	return bf.flushResidual(onesFill)
}

func (bf *BitFile) flushResidual(onesFill bool) error {
	if bf.bitCount == 0 {
		return nil
	}
	out := bf.bitBuffer << (8 - bf.bitCount)
	if onesFill {
		out |= 0xFF >> bf.bitCount
	}
	if _, err := bf.file.Write([]byte{out}); err != nil {
		return err
	}
	bf.bitBuffer = 0
	bf.bitCount = 0
	return nil
}

// GetBit reads a single bit, refilling the accumulator from the file
// whenever it runs dry.
func (bf *BitFile) GetBit() (int, error) {
	if bf == nil || bf.file == nil {
		return 0, ErrEndOfFile
	}
	if bf.bitCount == 0 {
		var raw [1]byte
		n, err := bf.file.Read(raw[:])
		if err != nil || n == 0 {
			return 0, ErrEndOfFile
		}
		bf.bitBuffer = raw[0]
		bf.bitCount = 8
	}
	bf.bitCount--
	bit := int((bf.bitBuffer >> bf.bitCount) & 0x01)
	return bit, nil
}

// PutBit accumulates a single bit, emitting a full byte to the file
// once eight have been gathered.
func (bf *BitFile) PutBit(bit int) error {
	if bf == nil || bf.file == nil {
		return ErrEndOfFile
	}
	bf.bitBuffer = (bf.bitBuffer << 1) | byte(bit&0x01)
	bf.bitCount++
	if bf.bitCount == 8 {
		if _, err := bf.file.Write([]byte{bf.bitBuffer}); err != nil {
			return err
		}
		bf.bitBuffer = 0
		bf.bitCount = 0
	}
	return nil
}

// GetChar reads one byte. When the accumulator is empty this degrades to
// plain byte I/O; otherwise the returned byte is assembled from the
// fresh file byte's high-order bits and the accumulator's remaining
// low-order bits, preserving bitCount across the call.
func (bf *BitFile) GetChar() (byte, error) {
	if bf == nil || bf.file == nil {
		return 0, ErrEndOfFile
	}
	var raw [1]byte
	n, err := bf.file.Read(raw[:])
	if err != nil || n == 0 {
		return 0, ErrEndOfFile
	}
	fresh := raw[0]
	if bf.bitCount == 0 {
		return fresh, nil
	}
	result := (fresh >> bf.bitCount) | (bf.bitBuffer << (8 - bf.bitCount))
	bf.bitBuffer = fresh
	return result, nil
}

// PutChar writes one byte, the symmetric operation to GetChar.
func (bf *BitFile) PutChar(c byte) error {
	if bf == nil || bf.file == nil {
		return ErrEndOfFile
	}
	if bf.bitCount == 0 {
		_, err := bf.file.Write([]byte{c})
		return err
	}
	out := (c >> bf.bitCount) | (bf.bitBuffer << (8 - bf.bitCount))
	if _, err := bf.file.Write([]byte{out}); err != nil {
		return err
	}
	bf.bitBuffer = c
	return nil
}

// GetBits fills dest with count bits, MSB-first, routing whole bytes
// through GetChar and looping the tail one bit at a time. A tail
// shorter than 8 bits is left-shifted into the high-order positions of
// dest's final byte.
func (bf *BitFile) GetBits(dest []byte, count uint) error {
	if bf == nil || bf.file == nil {
		return ErrEndOfFile
	}
	offset := 0
	remaining := count
	for remaining >= 8 {
		b, err := bf.GetChar()
		if err != nil {
			return err
		}
		dest[offset] = b
		offset++
		remaining -= 8
	}
	if remaining != 0 {
		var tmp byte
		for remaining > 0 {
			bit, err := bf.GetBit()
			if err != nil {
				return err
			}
			tmp = (tmp << 1) | byte(bit&0x01)
			remaining--
		}
		dest[offset] = tmp << (8 - (count % 8))
	}
	return nil
}

// PutBits writes count bits from src, MSB-first, the symmetric
// operation to GetBits.
func (bf *BitFile) PutBits(src []byte, count uint) error {
	if bf == nil || bf.file == nil {
		return ErrEndOfFile
	}
	offset := 0
	remaining := count
	for remaining >= 8 {
		if err := bf.PutChar(src[offset]); err != nil {
			return err
		}
		offset++
		remaining -= 8
	}
	if remaining != 0 {
		tmp := src[offset]
		for remaining > 0 {
			if err := bf.PutBit(int((tmp >> 7) & 0x01)); err != nil {
				return err
			}
			tmp <<= 1
			remaining--
		}
	}
	return nil
}
