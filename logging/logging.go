// Package logging points the standard logger at a file.
package logging

import (
	"io"
	"log"
	"os"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init appends log output to dest with the given prefix. An empty dest
// keeps stderr. The returned Closer restores stderr and closes the file.
func Init(dest, prefix string) (io.Closer, error) {
	log.SetPrefix(prefix)
	if dest == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return &logFile{f: f}, nil
}

type logFile struct {
	f *os.File
}

func (l *logFile) Close() error {
	log.SetOutput(os.Stderr)
	return l.f.Close()
}
