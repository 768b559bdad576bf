package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-lzss/core/engine"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lzss", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	encode := fs.Bool("c", false, "compress the input")
	decode := fs.Bool("d", false, "decompress the input")
	inPath := fs.String("i", "", "input file path (default stdin)")
	outPath := fs.String("o", "", "output file path (default stdout)")
	help := fs.Bool("h", false, "print usage")
	helpAlias := fs.Bool("?", false, "print usage")
	quiet := fs.Bool("q", false, "suppress the progress bar")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help || *helpAlias {
		printUsage(fs)
		return 0
	}

	if *encode == *decode {
		fmt.Fprintln(os.Stderr, "specify exactly one of -c or -d")
		return 1
	}

	input, closeInput, err := openInput(*inPath)
	if err != nil {
		engine.ReportFailure("could not open input", err)
		return 1
	}
	defer closeInput()

	output, closeOutput, err := openOutput(*outPath)
	if err != nil {
		engine.ReportFailure("could not open output", err)
		return 1
	}
	defer closeOutput()

	if *encode {
		result, err := engine.Compress(input, output, !*quiet && *inPath != "")
		if err != nil {
			engine.ReportFailure("compression failed", err)
			return 1
		}
		if *inPath != "" {
			engine.ReportStats("compression", result)
		}
		return 0
	}

	result, err := engine.Decompress(input, output)
	if err != nil {
		engine.ReportFailure("decompression failed", err)
		return 1
	}
	if *inPath != "" {
		engine.ReportStats("decompression", result)
	}
	return 0
}

func openInput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: lzss (-c | -d) [-i path] [-o path] [-q]")
	fs.PrintDefaults()
}
