// Package huffman builds a minimum-redundancy prefix code from symbol
// frequencies and emits the codeword table. Serializing the resulting
// tree or frequency table into an archive header is left to the
// caller: the bitstream this package speaks is only the coded symbol
// stream, carried through the same bitio layer the LZSS codec uses.
package huffman

import (
	"fmt"

	"github.com/go-lzss/core/bitio"
)

// CodeTable maps a byte to its codeword, expressed as a left/right
// string of '0'/'1' characters in the order a depth-first walk of the
// tree would visit them.
type CodeTable map[byte]string

// FrequencyTable walks data once and counts how often each byte value
// occurs. Only symbols that actually occur appear in the result.
func FrequencyTable(data []byte) map[byte]int {
	freq := make(map[byte]int)
	for _, b := range data {
		freq[b]++
	}
	return freq
}

// Tree builds the Huffman tree for the given frequency table. An empty
// table yields a nil tree.
func Tree(freq map[byte]int) *Node {
	if len(freq) == 0 {
		return nil
	}
	return buildTree(freq)
}

// Codes performs the depth-first traversal that emits the codeword
// table: '0' on left descent, '1' on right, with the accumulated
// string recorded at each leaf. A single-symbol tree is a bare leaf;
// it is still assigned the one-bit code "0" so the table is never
// empty for nonempty input.
func Codes(root *Node) CodeTable {
	table := make(CodeTable)
	if root == nil {
		return table
	}
	if root.isLeaf {
		table[root.symbol] = "0"
		return table
	}
	var walk func(n *Node, prefix string)
	walk = func(n *Node, prefix string) {
		if n.isLeaf {
			table[n.symbol] = prefix
			return
		}
		walk(n.left, prefix+"0")
		walk(n.right, prefix+"1")
	}
	walk(root, "")
	return table
}

// BuildCodeTable is a convenience wrapper running FrequencyTable, Tree,
// and Codes over data in one call.
func BuildCodeTable(data []byte) (*Node, CodeTable) {
	freq := FrequencyTable(data)
	root := Tree(freq)
	return root, Codes(root)
}

// EncodeSymbols writes data through bw, one codeword per byte, using
// table to look up each codeword. It fails if a symbol in data has no
// entry in table.
func EncodeSymbols(bw *bitio.BitFile, data []byte, table CodeTable) error {
	for _, b := range data {
		code, ok := table[b]
		if !ok {
			return fmt.Errorf("huffman: symbol %#x has no codeword", b)
		}
		for _, bit := range code {
			put := 0
			if bit == '1' {
				put = 1
			}
			if err := bw.PutBit(put); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeSymbol reads bits from br, following root's left/right children
// until a leaf is reached, and returns that leaf's symbol. The caller
// must already hold the same tree the encoder used; this package does
// not define a tree serialization.
func DecodeSymbol(br *bitio.BitFile, root *Node) (byte, error) {
	if root == nil {
		return 0, fmt.Errorf("huffman: cannot decode from an empty tree")
	}
	if root.isLeaf {
		// A single-symbol tree still spends the one-bit code "0" per
		// occurrence; consume it to stay in lockstep with the encoder.
		if _, err := br.GetBit(); err != nil {
			return 0, err
		}
		return root.symbol, nil
	}

	n := root
	for !n.isLeaf {
		bit, err := br.GetBit()
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.symbol, nil
}
