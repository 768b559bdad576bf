package huffman

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-lzss/core/bitio"
)

func TestCodesFormAPrefixSet(t *testing.T) {
	freq := FrequencyTable([]byte("ABRACADABRA"))
	root := Tree(freq)
	table := Codes(root)

	for a, codeA := range table {
		for b, codeB := range table {
			if a == b {
				continue
			}
			if strings.HasPrefix(codeB, codeA) {
				t.Fatalf("code %q for %q is a prefix of code %q for %q", codeA, string(a), codeB, string(b))
			}
		}
	}
}

func TestShortestCodeGoesToMostFrequentSymbol(t *testing.T) {
	freq := map[byte]int{'A': 5, 'B': 2, 'R': 2, 'C': 1, 'D': 1}
	root := Tree(freq)
	table := Codes(root)

	for symbol, code := range table {
		if symbol != 'A' && len(code) < len(table['A']) {
			t.Fatalf("symbol %q has a shorter code (%d bits) than A (%d bits)", string(symbol), len(code), len(table['A']))
		}
	}
}

func TestTotalEncodedLengthIsOptimal(t *testing.T) {
	freq := map[byte]int{'A': 5, 'B': 2, 'R': 2, 'C': 1, 'D': 1}
	root := Tree(freq)
	table := Codes(root)

	total := 0
	for symbol, count := range freq {
		total += count * len(table[symbol])
	}
	if total != 23 {
		t.Fatalf("total encoded length = %d bits, want 23", total)
	}
}

func TestSingleSymbolCodeIsNonEmpty(t *testing.T) {
	freq := map[byte]int{'Z': 42}
	root := Tree(freq)
	table := Codes(root)
	if len(table['Z']) == 0 {
		t.Fatalf("single-symbol code must not be empty")
	}
}

func TestEmptyInputYieldsEmptyTable(t *testing.T) {
	root, table := BuildCodeTable(nil)
	if root != nil {
		t.Fatalf("expected a nil tree for empty input")
	}
	if len(table) != 0 {
		t.Fatalf("expected an empty code table for empty input")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := []byte("ABRACADABRA")
	root, table := BuildCodeTable(data)

	dir := t.TempDir()
	path := filepath.Join(dir, "coded.bin")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	bw, err := bitio.Wrap(f, bitio.ModeWrite)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if err := EncodeSymbols(bw, data, table); err != nil {
		t.Fatalf("EncodeSymbols: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rf, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	br, err := bitio.Wrap(rf, bitio.ModeRead)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	got := make([]byte, len(data))
	for i := range got {
		b, err := DecodeSymbol(br, root)
		if err != nil {
			t.Fatalf("DecodeSymbol: %v", err)
		}
		got[i] = b
	}
	br.Close()

	if string(got) != string(data) {
		t.Fatalf("got %q, want %q", got, data)
	}
}

func TestEncodeSymbolsUnknownSymbol(t *testing.T) {
	_, table := BuildCodeTable([]byte("AB"))
	dir := t.TempDir()
	f, err := os.OpenFile(filepath.Join(dir, "x.bin"), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	bw, err := bitio.Wrap(f, bitio.ModeWrite)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	defer bw.Close()
	if err := EncodeSymbols(bw, []byte("C"), table); err == nil {
		t.Fatalf("expected an error for a symbol missing from the code table")
	}
}
