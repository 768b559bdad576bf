package lzss

// MatchFinder is the pluggable search strategy consumed by the codec.
// The core ships the brute-force reference implementation below; a
// hash-chain, binary-tree, or GPU-accelerated pattern matcher can be
// slotted in behind the same three calls without touching the encoder.
type MatchFinder interface {
	// Initialize prepares any auxiliary index against the window the
	// encoder is about to fill.
	Initialize(w *Window) error

	// FindMatch returns the longest run starting anywhere in the
	// window (read cyclically) that is a prefix of the lookahead
	// starting at uncodedHead. length is 0 when no match was found.
	FindMatch(windowHead, uncodedHead int) (offset, length int)

	// ReplaceChar stores replacement at slidingWindow[index] on the
	// encoder's behalf (the encoder does not write the window itself)
	// and keeps any auxiliary index in sync with that mutation.
	ReplaceChar(index int, replacement byte) error
}

// BruteForceMatchFinder is stateless: every call re-scans the window.
// It finds the best match with a KMP failure function rather than a
// naive O(window*lookahead) comparison, so a long run of repeated bytes
// doesn't cost quadratic time.
type BruteForceMatchFinder struct {
	window *Window
}

// NewBruteForceMatchFinder returns a MatchFinder ready for Initialize.
func NewBruteForceMatchFinder() *BruteForceMatchFinder {
	return &BruteForceMatchFinder{}
}

func (mf *BruteForceMatchFinder) Initialize(w *Window) error {
	mf.window = w
	return nil
}

func (mf *BruteForceMatchFinder) ReplaceChar(index int, replacement byte) error {
	mf.window.Set(index, replacement)
	return nil
}

func (mf *BruteForceMatchFinder) FindMatch(windowHead, uncodedHead int) (int, int) {
	// The window is followed by its first MaxCoded-1 bytes again, so a
	// match may run past the window's end and wrap to its start.
	search := make([]byte, WindowSize+MaxCoded-1)
	for i := range search {
		search[i] = mf.window.At(i)
	}
	pattern := make([]byte, MaxCoded)
	for i := 0; i < MaxCoded; i++ {
		pattern[i] = mf.window.Lookahead(uncodedHead + i)
	}
	length, offset := kmpLongestPrefixMatch(search, pattern)
	return offset, length
}

// prefixFunction is the standard KMP failure function: pi[i] is the
// length of the longest proper prefix of pattern[:i+1] that is also a
// suffix of it.
func prefixFunction(pattern []byte) []int {
	pi := make([]int, len(pattern))
	for i := 1; i < len(pattern); i++ {
		j := pi[i-1]
		for j > 0 && pattern[i] != pattern[j] {
			j = pi[j-1]
		}
		if pattern[i] == pattern[j] {
			j++
		}
		pi[i] = j
	}
	return pi
}

// kmpLongestPrefixMatch scans search for the longest prefix of pattern
// that occurs anywhere within it, returning that length and the index
// in search where the match begins.
func kmpLongestPrefixMatch(search, pattern []byte) (length, index int) {
	pi := prefixFunction(pattern)
	best, k, bestIndex := 0, 0, 0
	for i, b := range search {
		for k > 0 && b != pattern[k] {
			k = pi[k-1]
		}
		if b == pattern[k] {
			k++
		}
		if k > best {
			best = k
			bestIndex = i - k + 1
			if k == len(pattern) {
				break
			}
		}
	}
	return best, bestIndex
}
