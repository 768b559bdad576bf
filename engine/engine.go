// Package engine wires the CLI surface to the LZSS codec: taking the
// already-open file handles, driving the encode/decode call, and reporting
// progress and size statistics the way the original compression tool
// did.
package engine

import (
	"fmt"
	"io"
	"os"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"

	"github.com/go-lzss/core/compressor/lzss"
)

// Result carries the byte counts a caller needs to report a
// compression ratio.
type Result struct {
	InputBytes  int64
	OutputBytes int64
}

// Compress reads input, LZSS-encodes it, and writes the result to
// output. When input is a regular file (not a pipe), showProgress
// drives a byte progress bar across stderr.
func Compress(input, output *os.File, showProgress bool) (Result, error) {
	size, _ := fileSize(input)

	var bar *pb.ProgressBar
	var opts *lzss.EncodeOptions
	if showProgress && size > 0 {
		bar = pb.New64(size)
		bar.Set(pb.Bytes, true)
		bar.Start()
		opts = &lzss.EncodeOptions{OnByte: func(n int) { bar.Add64(int64(n)) }}
	}

	if err := lzss.EncodeLZSSWith(input, output, opts); err != nil {
		return Result{}, err
	}
	if bar != nil {
		bar.Finish()
	}

	outSize, _ := fileSize(output)
	return Result{InputBytes: size, OutputBytes: outSize}, nil
}

// Decompress reads an LZSS bitstream from input and writes the
// reconstructed bytes to output.
func Decompress(input, output *os.File) (Result, error) {
	size, _ := fileSize(input)
	if err := lzss.DecodeLZSS(input, output); err != nil {
		return Result{}, err
	}
	outSize, _ := fileSize(output)
	return Result{InputBytes: size, OutputBytes: outSize}, nil
}

// ReportStats prints the original/compressed sizes and ratio the way
// the original tool's compressFile did, colored green on success.
func ReportStats(label string, r Result) {
	green := color.New(color.FgGreen).FprintfFunc()
	green(os.Stderr, "%s done.\n", label)
	fmt.Fprintf(os.Stderr, "  input:  %d bytes\n", r.InputBytes)
	fmt.Fprintf(os.Stderr, "  output: %d bytes\n", r.OutputBytes)
	if r.InputBytes > 0 {
		fmt.Fprintf(os.Stderr, "  ratio:  %.2f%%\n", float64(r.OutputBytes)/float64(r.InputBytes)*100)
	}
}

// ReportFailure prints msg in red to stderr.
func ReportFailure(msg string, err error) {
	red := color.New(color.FgRed).FprintfFunc()
	red(os.Stderr, "%s: %v\n", msg, err)
}

func fileSize(f *os.File) (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if info.Mode().IsRegular() {
		return info.Size(), nil
	}
	return 0, io.EOF
}
