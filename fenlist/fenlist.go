// Package fenlist reads FEN-per-line position files, optionally compressed.
package fenlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/inhies/go-bytesize"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"mailbox-chess/mailbox"
)

// Entry is one position line.
type Entry struct {
	Line     int // 1-based line number in the decompressed text
	FEN      string
	Position *mailbox.Position // nil when Err is set
	Err      error
}

// Reader scans a FEN list. Lines that are blank or start with '#' are
// skipped; every other line yields an Entry, even when it fails to decode.
type Reader struct {
	file    *os.File
	source  io.Reader
	counter *countingReader
	scanner *bufio.Scanner
	line    int
	entry   Entry
}

// Open opens path and picks a decompressor from its suffix: .zst or .bz2.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening FEN list: %w", err)
	}
	r := &Reader{file: file}
	if err := r.setSource(path); err != nil {
		file.Close()
		return nil, err
	}
	r.init()
	return r, nil
}

// NewReader scans uncompressed text from src.
func NewReader(src io.Reader) *Reader {
	r := &Reader{source: src}
	r.init()
	return r
}

func (r *Reader) setSource(path string) error {
	switch {
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(r.file)
		if err != nil {
			return fmt.Errorf("error opening zst: %w", err)
		}
		r.source = zr
	case strings.HasSuffix(path, ".bz2"):
		br, err := bzip2.NewReader(r.file, nil)
		if err != nil {
			return fmt.Errorf("error opening bzip2: %w", err)
		}
		r.source = br
	default:
		r.source = r.file
	}
	return nil
}

func (r *Reader) init() {
	r.counter = &countingReader{r: r.source}
	// UTF-8 by default; a BOM switches to UTF-16 and is dropped either way.
	text := transform.NewReader(r.counter, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	r.scanner = bufio.NewScanner(text)
}

// Scan advances to the next position line.
func (r *Reader) Scan() bool {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pos, err := mailbox.Decode(line)
		r.entry = Entry{Line: r.line, FEN: line, Position: pos, Err: err}
		return true
	}
	r.entry = Entry{}
	return false
}

// Entry returns the entry produced by the last successful Scan.
func (r *Reader) Entry() Entry { return r.entry }

// Err returns the first read error. Decode errors are reported per entry.
func (r *Reader) Err() error { return r.scanner.Err() }

// BytesRead is the amount of decompressed text consumed so far.
func (r *Reader) BytesRead() bytesize.ByteSize {
	return bytesize.New(float64(r.counter.n))
}

// Close releases the decompressor and the file. Readers made with
// NewReader have nothing to close.
func (r *Reader) Close() error {
	switch src := r.source.(type) {
	case *zstd.Decoder:
		src.Close()
	case *bzip2.Reader:
		src.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
