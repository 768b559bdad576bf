package lzss

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/go-lzss/core/bitio"
)

// EncodeOptions lets a caller swap in a different MatchFinder and
// observe progress; both fields are optional.
type EncodeOptions struct {
	MatchFinder MatchFinder
	OnByte      func(n int)
}

// EncodeLZSS compresses input to output using the brute-force reference
// match finder.
func EncodeLZSS(input, output *os.File) error {
	return EncodeLZSSWith(input, output, nil)
}

// EncodeLZSSWith compresses input to output, following the sliding-
// window state machine: prime the lookahead, then repeatedly query the
// match finder, emit either a literal or a back-reference, and advance
// both cursors by however much was consumed.
func EncodeLZSSWith(input, output *os.File, opts *EncodeOptions) error {
	if input == nil || output == nil {
		return bitio.ErrNoEntity
	}

	var mf MatchFinder = NewBruteForceMatchFinder()
	var onByte func(int)
	if opts != nil {
		if opts.MatchFinder != nil {
			mf = opts.MatchFinder
		}
		onByte = opts.OnByte
	}

	window := NewWindow()
	if err := mf.Initialize(window); err != nil {
		return err
	}

	bw, err := bitio.Wrap(output, bitio.ModeWrite)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(input)

	remaining := 0
	for ; remaining < MaxCoded; remaining++ {
		c, err := reader.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		window.SetLookahead(remaining, c)
	}
	if remaining == 0 {
		_, err := bw.ToFile()
		return err
	}

	windowHead, uncodedHead := 0, 0

	for remaining > 0 {
		offset, length := mf.FindMatch(windowHead, uncodedHead)
		if length > remaining {
			length = remaining
		}

		if length <= MaxUncoded {
			length = 1
			if err := bw.PutBit(1); err != nil {
				return err
			}
			if err := bw.PutChar(window.Lookahead(uncodedHead)); err != nil {
				return err
			}
		} else {
			if err := bw.PutBit(0); err != nil {
				return err
			}
			if err := putFieldBits(bw, uint32(offset), OffsetBits); err != nil {
				return err
			}
			if err := putFieldBits(bw, uint32(length-(MaxUncoded+1)), LengthBits); err != nil {
				return err
			}
		}

		i := 0
		for ; i < length; i++ {
			c, err := reader.ReadByte()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if err := mf.ReplaceChar(windowHead, window.Lookahead(uncodedHead)); err != nil {
				return err
			}
			window.SetLookahead(uncodedHead, c)
			windowHead = (windowHead + 1) % WindowSize
			uncodedHead = (uncodedHead + 1) % MaxCoded
			if onByte != nil {
				onByte(1)
			}
		}
		for ; i < length; i++ {
			if err := mf.ReplaceChar(windowHead, window.Lookahead(uncodedHead)); err != nil {
				return err
			}
			windowHead = (windowHead + 1) % WindowSize
			uncodedHead = (uncodedHead + 1) % MaxCoded
			remaining--
			// This byte was read from input during an earlier iteration's
			// priming or advance step and is only now being evicted from
			// the lookahead; it still counts toward total progress, or the
			// bar would stall short of 100% once input runs dry.
			if onByte != nil {
				onByte(1)
			}
		}
	}

	_, err = bw.ToFile()
	return err
}

// DecodeLZSS decompresses input to output. It is the exact inverse of
// EncodeLZSS: a 1-bit flag precedes either a literal byte or a
// back-reference, and a bit read returning EOF is the normal
// loop-exit condition rather than a failure.
func DecodeLZSS(input, output *os.File) error {
	if input == nil || output == nil {
		return bitio.ErrNoEntity
	}

	br, err := bitio.Wrap(input, bitio.ModeRead)
	if err != nil {
		return err
	}

	window := NewWindow()
	writer := bufio.NewWriter(output)

	nextChar := 0
	for {
		flag, err := br.GetBit()
		if err != nil {
			break
		}

		if flag == 1 {
			c, err := br.GetChar()
			if err != nil {
				break
			}
			if err := writer.WriteByte(c); err != nil {
				return err
			}
			window.Set(nextChar, c)
			nextChar = (nextChar + 1) % WindowSize
			continue
		}

		offsetField, err := getFieldBits(br, OffsetBits)
		if err != nil {
			break
		}
		lengthField, err := getFieldBits(br, LengthBits)
		if err != nil {
			break
		}
		offset := int(offsetField)
		length := int(lengthField) + MaxUncoded + 1

		// Stage the matched run before copying it into the window:
		// the source and destination ranges can overlap when offset
		// is close to nextChar.
		staged := make([]byte, length)
		for i := 0; i < length; i++ {
			staged[i] = window.At(offset + i)
		}
		for i := 0; i < length; i++ {
			if err := writer.WriteByte(staged[i]); err != nil {
				return err
			}
			window.Set(nextChar+i, staged[i])
		}
		nextChar = (nextChar + length) % WindowSize
	}

	return writer.Flush()
}

// putFieldBits and getFieldBits transfer the OFFSET_BITS/LENGTH_BITS
// sub-fields through the endian-aware numeric path, matching how the
// bitio layer expects a machine integer to be presented regardless of
// how many of its bits actually carry data.
func putFieldBits(bw *bitio.BitFile, value uint32, bits uint) error {
	buf := make([]byte, 4)
	binary.NativeEndian.PutUint32(buf, value)
	return bw.PutBitsNum(buf, bits)
}

func getFieldBits(br *bitio.BitFile, bits uint) (uint32, error) {
	buf := make([]byte, 4)
	if err := br.GetBitsNum(buf, bits); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(buf), nil
}
