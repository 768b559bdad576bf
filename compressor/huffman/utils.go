package huffman

import (
	"container/heap"
	"slices"
)

// Node is a binary-tree node carrying either a leaf symbol or an
// internal merge of its two children. id breaks ties between entries
// of equal frequency so the merge order - and therefore the resulting
// code - is deterministic rather than dependent on map iteration
// order.
type Node struct {
	freq, id    int
	symbol      byte
	isLeaf      bool
	left, right *Node
}

type nodeHeap []*Node

func (hub *nodeHeap) Push(item any) {
	*hub = append(*hub, item.(*Node))
}

func (hub *nodeHeap) Pop() any {
	popped := (*hub)[len(*hub)-1]
	(*hub) = (*hub)[:len(*hub)-1]
	return popped
}

func (hub nodeHeap) Len() int {
	return len(hub)
}

func (hub nodeHeap) Less(i, j int) bool {
	if hub[i].freq != hub[j].freq {
		return hub[i].freq < hub[j].freq
	}
	return hub[i].id < hub[j].id
}

func (hub nodeHeap) Swap(i, j int) {
	hub[i], hub[j] = hub[j], hub[i]
}

// buildTree runs the merge loop: pop the two minimum-frequency nodes,
// join them under a new internal node, and push it back until one
// entry - the root - remains. The priority queue is a binary heap
// rather than the source's order-preserving linked list; frequencies
// don't determine a unique optimal code, so any consistent tie-break
// passes the optimality test.
func buildTree(symbolFreq map[byte]int) *Node {
	var symbols []byte
	for b := range symbolFreq {
		symbols = append(symbols, b)
	}
	slices.Sort(symbols)

	var treehub nodeHeap
	monoID := 0
	for _, symbol := range symbols {
		treehub = append(treehub, &Node{
			freq:   symbolFreq[symbol],
			symbol: symbol,
			isLeaf: true,
			id:     monoID,
		})
		monoID++
	}
	heap.Init(&treehub)
	for treehub.Len() > 1 {
		x := heap.Pop(&treehub).(*Node)
		y := heap.Pop(&treehub).(*Node)
		heap.Push(&treehub, &Node{
			freq:  x.freq + y.freq,
			left:  x,
			right: y,
			id:    monoID,
		})
		monoID++
	}
	return heap.Pop(&treehub).(*Node)
}
