package main

import "mailbox-chess/movestore"

// recordSink streams move records to a parquet writer goroutine.
type recordSink struct {
	records chan movestore.MoveRecord
	done    chan error
	count   int
}

func newRecordSink(path string) *recordSink {
	s := &recordSink{
		records: make(chan movestore.MoveRecord, 256),
		done:    make(chan error, 1),
	}
	go func() {
		// Write drains the channel even when it fails, so Add never blocks.
		s.done <- movestore.Write(path, s.records, 4)
	}()
	return s
}

func (s *recordSink) Add(recs []movestore.MoveRecord) {
	for _, r := range recs {
		s.records <- r
	}
	s.count += len(recs)
}

func (s *recordSink) Close() error {
	close(s.records)
	return <-s.done
}
