package lzss

// Default parameters. These are fixed at build time: changing them
// changes the wire format of every archive already produced with the
// old values.
const (
	WindowSize = 4096
	MaxCoded   = 18
	MaxUncoded = 2
	OffsetBits = 12
	LengthBits = 4
	windowFill = ' '
)

// Window owns the sliding-window dictionary and the lookahead buffer
// shared between the codec and its match finder. It replaces the
// source's process-wide globals: the codec owns one Window per
// encode/decode call and hands a borrowed reference to the finder.
// windowHead/uncodedHead are tracked by the codec's own loop variables
// rather than here, since both the encoder and decoder advance them
// under slightly different rules.
type Window struct {
	slidingWindow    [WindowSize]byte
	uncodedLookahead [MaxCoded]byte
}

// NewWindow returns a window pre-filled with spaces, so back-reference
// offsets are valid even before any real input has been seen.
func NewWindow() *Window {
	w := &Window{}
	for i := range w.slidingWindow {
		w.slidingWindow[i] = windowFill
	}
	return w
}

// At returns the byte stored at the given window index, taken modulo
// WindowSize.
func (w *Window) At(index int) byte {
	return w.slidingWindow[index%WindowSize]
}

// Set writes b at the given window index, taken modulo WindowSize.
func (w *Window) Set(index int, b byte) {
	w.slidingWindow[index%WindowSize] = b
}

// Lookahead returns the byte stored in the lookahead buffer at the
// given index, taken modulo MaxCoded.
func (w *Window) Lookahead(index int) byte {
	return w.uncodedLookahead[index%MaxCoded]
}

// SetLookahead writes b into the lookahead buffer at the given index,
// taken modulo MaxCoded.
func (w *Window) SetLookahead(index int, b byte) {
	w.uncodedLookahead[index%MaxCoded] = b
}
