// Package movestore exports generated moves as parquet rows.
package movestore

import (
	"fmt"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"mailbox-chess/mailbox"
)

// MoveRecord is one generated move together with the position it came from.
type MoveRecord struct {
	FEN       string `parquet:"name=fen, type=BYTE_ARRAY, convertedtype=UTF8" json:"fen"`
	Side      string `parquet:"name=side, type=BYTE_ARRAY, convertedtype=UTF8" json:"side"`
	From      string `parquet:"name=from, type=BYTE_ARRAY, convertedtype=UTF8" json:"from"`
	To        string `parquet:"name=to, type=BYTE_ARRAY, convertedtype=UTF8" json:"to"`
	FromIndex int32  `parquet:"name=from_index, type=INT32" json:"from_index"`
	ToIndex   int32  `parquet:"name=to_index, type=INT32" json:"to_index"`
	Piece     string `parquet:"name=piece, type=BYTE_ARRAY, convertedtype=UTF8" json:"piece"`
	Captured  string `parquet:"name=captured, type=BYTE_ARRAY, convertedtype=UTF8" json:"captured"`
	Kind      string `parquet:"name=kind, type=BYTE_ARRAY, convertedtype=UTF8" json:"kind"`
	Promotion string `parquet:"name=promotion, type=BYTE_ARRAY, convertedtype=UTF8" json:"promotion"`
	UCI       string `parquet:"name=uci, type=BYTE_ARRAY, convertedtype=UTF8" json:"uci"`
}

// RecordsFor converts moves generated from pos into rows. Empty squares and
// missing promotions are written as "".
func RecordsFor(pos *mailbox.Position, side mailbox.Color, moves []mailbox.Move) []MoveRecord {
	fen := pos.FEN()
	out := make([]MoveRecord, 0, len(moves))
	for _, m := range moves {
		rec := MoveRecord{
			FEN:       fen,
			Side:      side.String(),
			From:      m.From().String(),
			To:        m.To().String(),
			FromIndex: int32(m.From()),
			ToIndex:   int32(m.To()),
			Piece:     pieceText(m.MovedPiece()),
			Captured:  pieceText(m.CapturedPiece()),
			Kind:      m.Kind().String(),
			UCI:       m.String(),
		}
		if k, ok := m.Promotion(); ok {
			rec.Promotion = k.String()
		}
		out = append(out, rec)
	}
	return out
}

func pieceText(p mailbox.Piece) string {
	if p.IsEmpty() {
		return ""
	}
	return string(p.FENRune())
}

// Write drains records into a SNAPPY-compressed parquet file at path. The
// channel is always drained, so senders never block on a failed write. On
// failure the file is still closed; it may lack its footer.
func Write(path string, records <-chan MoveRecord, parallel int64) (err error) {
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		for range records {
		}
		return fmt.Errorf("movestore: create %s: %w", path, err)
	}
	defer func() {
		if cerr := fileWriter.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("movestore: close %s: %w", path, cerr)
		}
	}()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(MoveRecord), parallel)
	if err != nil {
		for range records {
		}
		return fmt.Errorf("movestore: %w", err)
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	var writeErr error
	for record := range records {
		if writeErr != nil {
			continue
		}
		if werr := parquetWriter.Write(record); werr != nil {
			writeErr = fmt.Errorf("movestore: write: %w", werr)
		}
	}
	// WriteStop flushes buffered rows and writes the footer; run it even
	// after a row error so the file is as complete as possible.
	if serr := parquetWriter.WriteStop(); serr != nil && writeErr == nil {
		writeErr = fmt.Errorf("movestore: finish: %w", serr)
	}
	return writeErr
}

// WriteAll is Write for records already in memory.
func WriteAll(path string, records []MoveRecord, parallel int64) error {
	ch := make(chan MoveRecord, len(records))
	for _, r := range records {
		ch <- r
	}
	close(ch)
	return Write(path, ch, parallel)
}

// Read loads every row of a file produced by Write.
func Read(path string, parallel int64) ([]MoveRecord, error) {
	absPath := path
	if !filepath.IsAbs(path) {
		if resolved, err := filepath.Abs(path); err == nil {
			absPath = resolved
		}
	}
	fileReader, err := local.NewLocalFileReader(absPath)
	if err != nil {
		return nil, fmt.Errorf("movestore: open %s: %w", path, err)
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(MoveRecord), parallel)
	if err != nil {
		return nil, fmt.Errorf("movestore: %w", err)
	}
	defer parquetReader.ReadStop()

	num := int(parquetReader.GetNumRows())
	records := make([]MoveRecord, 0, num)
	batchSize := 1024
	for offset := 0; offset < num; offset += batchSize {
		if remain := num - offset; remain < batchSize {
			batchSize = remain
		}
		batch := make([]MoveRecord, batchSize)
		if err := parquetReader.Read(&batch); err != nil {
			return nil, fmt.Errorf("movestore: read: %w", err)
		}
		records = append(records, batch...)
	}
	return records, nil
}
