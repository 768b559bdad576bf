package bitio

import "errors"

// Sentinel errors mirroring the errno-like failure set of the original
// bitfile library: callers switch on these with errors.Is rather than
// inspecting numeric codes.
var (
	ErrNoEntity    = errors.New("bitio: handle is nil")
	ErrOutOfMemory = errors.New("bitio: allocation failed")
	ErrFileOpen    = errors.New("bitio: could not open underlying file")
	ErrEndOfFile   = errors.New("bitio: end of file")
	ErrUnsupported = errors.New("bitio: unsupported host endianness")
	ErrRangeError  = errors.New("bitio: bit count exceeds destination width")
)
