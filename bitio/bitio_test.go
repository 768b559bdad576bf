package bitio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T, mode Mode) (*BitFile, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stream.bin")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	bf, err := Wrap(f, mode)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	return bf, path
}

func TestPutBitPackingMatchesScenario(t *testing.T) {
	bf, path := openTemp(t, ModeWrite)
	bits := []int{1, 0, 1, 1, 0, 0, 0, 1, 1}
	for _, b := range bits {
		if err := bf.PutBit(b); err != nil {
			t.Fatalf("PutBit: %v", err)
		}
	}
	if err := bf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(out) != 2 || out[0] != 0xB1 || out[1] != 0x80 {
		t.Fatalf("got % X, want [B1 80]", out)
	}
}

func TestBitRoundTrip(t *testing.T) {
	for _, count := range []uint{0, 1, 7, 8, 9, 16, 17} {
		bf, path := openTemp(t, ModeWrite)
		for i := uint(0); i < count; i++ {
			if err := bf.PutBit(int(i % 2)); err != nil {
				t.Fatalf("PutBit: %v", err)
			}
		}
		if err := bf.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		rf, err := Wrap(f, ModeRead)
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		for i := uint(0); i < count; i++ {
			bit, err := rf.GetBit()
			if err != nil {
				t.Fatalf("count=%d GetBit: %v", count, err)
			}
			if bit != int(i%2) {
				t.Fatalf("count=%d bit %d = %d, want %d", count, i, bit, i%2)
			}
		}
		rf.Close()
	}
}

func TestByteAlignAfterPartialByte(t *testing.T) {
	bf, path := openTemp(t, ModeWrite)
	for _, b := range []int{1, 1, 0} {
		if err := bf.PutBit(b); err != nil {
			t.Fatalf("PutBit: %v", err)
		}
	}
	if _, err := bf.ByteAlign(); err != nil {
		t.Fatalf("ByteAlign: %v", err)
	}
	if err := bf.PutChar(0xAB); err != nil {
		t.Fatalf("PutChar: %v", err)
	}
	if err := bf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := []byte{0b11000000, 0xAB}
	if !bytes.Equal(out, want) {
		t.Fatalf("got % X, want % X", out, want)
	}
}

func TestGetCharPutCharByteRoundTrip(t *testing.T) {
	bf, path := openTemp(t, ModeWrite)
	if err := bf.PutBit(1); err != nil {
		t.Fatalf("PutBit: %v", err)
	}
	payload := []byte("hello, lzss")
	for _, c := range payload {
		if err := bf.PutChar(c); err != nil {
			t.Fatalf("PutChar: %v", err)
		}
	}
	if err := bf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rf, err := Wrap(f, ModeRead)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if _, err := rf.GetBit(); err != nil {
		t.Fatalf("GetBit: %v", err)
	}
	got := make([]byte, len(payload))
	for i := range got {
		b, err := rf.GetChar()
		if err != nil {
			t.Fatalf("GetChar: %v", err)
		}
		got[i] = b
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
	rf.Close()
}

func TestPutBitsGetBitsTailAlignment(t *testing.T) {
	bf, path := openTemp(t, ModeWrite)
	src := []byte{0b10110100}
	if err := bf.PutBits(src, 5); err != nil {
		t.Fatalf("PutBits: %v", err)
	}
	if err := bf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rf, err := Wrap(f, ModeRead)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	dest := make([]byte, 1)
	if err := rf.GetBits(dest, 5); err != nil {
		t.Fatalf("GetBits: %v", err)
	}
	if dest[0] != 0b10110000 {
		t.Fatalf("got %08b, want %08b", dest[0], byte(0b10110000))
	}
	rf.Close()
}

func TestPutBitsNumGetBitsNumRoundTrip(t *testing.T) {
	bf, path := openTemp(t, ModeWrite)
	value := []byte{0x34, 0x12} // 0x1234 stored little-endian
	if err := bf.PutBitsNum(value, 16); err != nil {
		t.Fatalf("PutBitsNum: %v", err)
	}
	if err := bf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if bf.numOps != nil {
		if _, ok := bf.numOps.(littleEndianNum); ok {
			if !bytes.Equal(out, []byte{0x34, 0x12}) {
				t.Fatalf("got % X, want [34 12] on little-endian host", out)
			}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rf, err := Wrap(f, ModeRead)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	dest := make([]byte, 2)
	if err := rf.GetBitsNum(dest, 16); err != nil {
		t.Fatalf("GetBitsNum: %v", err)
	}
	if !bytes.Equal(dest, value) {
		t.Fatalf("got % X, want % X", dest, value)
	}
	rf.Close()
}

func TestPutBitsNumGetBitsNumPartialByteRoundTrip(t *testing.T) {
	// 291 (0x123) in a 12-bit field: its payload spans a whole byte plus
	// a nonzero nibble, the shape LZSS uses for OFFSET_BITS.
	for _, tc := range []struct {
		name  string
		value uint32
		count uint
		size  int
	}{
		{"offsetField", 291, 12, 4},
		{"lengthField", 13, 4, 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bf, path := openTemp(t, ModeWrite)
			buf := make([]byte, tc.size)
			for i := 0; i < tc.size; i++ {
				buf[i] = byte(tc.value >> (8 * i))
			}
			if err := bf.PutBitsNum(buf, tc.count); err != nil {
				t.Fatalf("PutBitsNum: %v", err)
			}
			if err := bf.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			rf, err := Wrap(f, ModeRead)
			if err != nil {
				t.Fatalf("Wrap: %v", err)
			}
			dest := make([]byte, tc.size)
			if err := rf.GetBitsNum(dest, tc.count); err != nil {
				t.Fatalf("GetBitsNum: %v", err)
			}
			rf.Close()

			var got uint32
			for i := tc.size - 1; i >= 0; i-- {
				got = got<<8 | uint32(dest[i])
			}
			if got != tc.value {
				t.Fatalf("count=%d got %d, want %d", tc.count, got, tc.value)
			}
		})
	}
}

func TestPutBitsNumRangeError(t *testing.T) {
	bf, _ := openTemp(t, ModeWrite)
	defer bf.Close()
	if err := bf.PutBitsNum([]byte{0x00}, 9); err != ErrRangeError {
		t.Fatalf("got %v, want ErrRangeError", err)
	}
}
