package bitio

import "unsafe"

// endianness mirrors the classic construction-time probe: write 1 into a
// word-sized integer and look at where the 1 landed.
type endianness int

const (
	endianUnsupported endianness = iota
	endianLittle
	endianBig
)

func hostEndianness() endianness {
	var probe uint32 = 1
	bytes := (*[4]byte)(unsafe.Pointer(&probe))
	switch {
	case bytes[0] == 1:
		return endianLittle
	case bytes[3] == 1:
		return endianBig
	default:
		return endianUnsupported
	}
}

// numTransfer is the capability bound to a handle once, at construction,
// in place of the source's pair of mutable function pointers.
type numTransfer interface {
	getBitsNum(bf *BitFile, dest []byte, count uint) error
	putBitsNum(bf *BitFile, src []byte, count uint) error
}

func numTransferFor(e endianness) numTransfer {
	switch e {
	case endianLittle:
		return littleEndianNum{}
	case endianBig:
		return bigEndianNum{}
	default:
		return nil
	}
}

// littleEndianNum transfers the byte array in the order given: index 0 is
// the least-significant byte, matching how a little-endian host lays out
// its own integers.
type littleEndianNum struct{}

func (littleEndianNum) getBitsNum(bf *BitFile, dest []byte, count uint) error {
	return bf.transferBitsNum(dest, count, false, true)
}

func (littleEndianNum) putBitsNum(bf *BitFile, src []byte, count uint) error {
	return bf.transferBitsNum(src, count, true, true)
}

// bigEndianNum walks the array from size-1 downward so the wire encoding
// stays least-significant-byte-first regardless of host byte order.
type bigEndianNum struct{}

func (bigEndianNum) getBitsNum(bf *BitFile, dest []byte, count uint) error {
	return bf.transferBitsNum(dest, count, false, false)
}

func (bigEndianNum) putBitsNum(bf *BitFile, src []byte, count uint) error {
	return bf.transferBitsNum(src, count, true, false)
}

// transferBitsNum moves count bits between the handle and buf, visiting
// buf's bytes forward (ascending) or backward (descending) according to
// forward, and writing (write=true) or reading (write=false).
func (bf *BitFile) transferBitsNum(buf []byte, count uint, write, forward bool) error {
	size := uint(len(buf))
	if count > size*8 {
		return ErrRangeError
	}

	indices := make([]int, size)
	if forward {
		for i := range indices {
			indices[i] = i
		}
	} else {
		for i := range indices {
			indices[i] = int(size) - 1 - i
		}
	}

	remaining := count
	for _, idx := range indices {
		if remaining == 0 {
			if write {
				continue
			}
			buf[idx] = 0
			continue
		}
		if remaining >= 8 {
			if write {
				if err := bf.PutChar(buf[idx]); err != nil {
					return err
				}
			} else {
				b, err := bf.GetChar()
				if err != nil {
					return err
				}
				buf[idx] = b
			}
			remaining -= 8
			continue
		}

		// Tail of fewer than 8 bits in this byte: the payload occupies
		// the byte's low-order bits (a numeric value, not a GetBits/PutBits
		// bit run), so shift it up before sending it MSB-first, mirroring
		// bitfile.c; on read the accumulated bits are already right-aligned.
		if write {
			tmp := buf[idx] << (8 - remaining)
			for n := remaining; n > 0; n-- {
				if err := bf.PutBit(int((tmp >> 7) & 0x01)); err != nil {
					return err
				}
				tmp <<= 1
			}
		} else {
			var tmp byte
			for n := remaining; n > 0; n-- {
				bit, err := bf.GetBit()
				if err != nil {
					return err
				}
				tmp = (tmp << 1) | byte(bit&0x01)
			}
			buf[idx] = tmp
		}
		remaining = 0
	}
	return nil
}

// GetBitsNum reads count bits into dest, using len(dest) as the
// destination width. The byte order on the wire is resolved by the
// numTransfer bound at construction, so the same call reproduces the
// same numeric value on any host.
func (bf *BitFile) GetBitsNum(dest []byte, count uint) error {
	if bf == nil || bf.file == nil {
		return ErrEndOfFile
	}
	if bf.numOps == nil {
		return ErrUnsupported
	}
	return bf.numOps.getBitsNum(bf, dest, count)
}

// PutBitsNum writes count bits from src, using len(src) as the source
// width.
func (bf *BitFile) PutBitsNum(src []byte, count uint) error {
	if bf == nil || bf.file == nil {
		return ErrEndOfFile
	}
	if bf.numOps == nil {
		return ErrUnsupported
	}
	return bf.numOps.putBitsNum(bf, src, count)
}
