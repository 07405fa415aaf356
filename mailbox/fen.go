package mailbox

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is matched by every decode failure under errors.Is.
var ErrInvalidFEN = errors.New("invalid FEN")

// FENFormatError describes why a FEN string could not be decoded.
type FENFormatError struct {
	FEN    string
	Field  string // "fields", "placement", "side", "castling", "en passant", "halfmove", "fullmove"
	Reason string
	Err    error // underlying parse error, if any
}

func (e *FENFormatError) Error() string {
	msg := fmt.Sprintf("invalid FEN %q: %s: %s", e.FEN, e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FENFormatError) Unwrap() error { return e.Err }

// Is makes every FENFormatError match ErrInvalidFEN.
func (e *FENFormatError) Is(target error) bool { return target == ErrInvalidFEN }

// Decode parses a six-field FEN string into a new Position.
// On failure it returns a *FENFormatError and no Position.
//
// Fields may be separated by any run of whitespace, and leading or trailing
// whitespace is ignored. The clocks must be plain decimal numbers; a sign
// is rejected.
func Decode(fen string) (*Position, error) {
	fail := func(field, reason string, err error) (*Position, error) {
		return nil, &FENFormatError{FEN: fen, Field: field, Reason: reason, Err: err}
	}

	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return fail("fields", fmt.Sprintf("want 6 space-separated fields, got %d", len(fields)), nil)
	}

	var pos Position
	pos.enPassant = NoSquare

	// 1. Piece placement
	if reason := decodePlacement(&pos, fields[0]); reason != "" {
		return fail("placement", reason, nil)
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return fail("side", "side to move must be 'w' or 'b'", nil)
	}

	// 3. Castling availability
	cr, ok := decodeCastling(fields[2])
	if !ok {
		return fail("castling", fmt.Sprintf("bad castling availability %q", fields[2]), nil)
	}
	pos.castling = cr

	// 4. En passant target square
	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return fail("en passant", fmt.Sprintf("bad target square %q", fields[3]), nil)
		}
		pos.enPassant = sq
		pos.hasEnPassant = true
	}

	// 5. Halfmove clock
	if strings.HasPrefix(fields[4], "+") {
		return fail("halfmove", "explicit sign not allowed", nil)
	}
	halfmove, err := strconv.Atoi(fields[4])
	if err != nil {
		return fail("halfmove", "not a number", err)
	}
	if halfmove < 0 {
		return fail("halfmove", "must not be negative", nil)
	}
	pos.halfmoveClock = halfmove

	// 6. Fullmove number
	if strings.HasPrefix(fields[5], "+") {
		return fail("fullmove", "explicit sign not allowed", nil)
	}
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil {
		return fail("fullmove", "not a number", err)
	}
	if fullmove < 1 {
		return fail("fullmove", "must be at least 1", nil)
	}
	pos.fullmoveNumber = fullmove

	return &pos, nil
}

// decodePlacement fills pos.squares from the first FEN field. It returns a
// non-empty reason when the field is malformed.
func decodePlacement(pos *Position, placement string) string {
	rank, file := 7, 0
	for _, ch := range placement {
		switch {
		case ch == '/':
			if file != 8 {
				return fmt.Sprintf("rank %d describes %d files", rank+1, file)
			}
			rank--
			file = 0
			if rank < 0 {
				return "more than 8 ranks"
			}
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
			if file > 8 {
				return fmt.Sprintf("rank %d describes more than 8 files", rank+1)
			}
		default:
			piece, ok := PieceFromFEN(ch)
			if !ok {
				return fmt.Sprintf("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return fmt.Sprintf("rank %d describes more than 8 files", rank+1)
			}
			pos.squares[SquareAt(rank, file)] = piece
			file++
		}
	}
	if rank != 0 {
		return fmt.Sprintf("want 8 ranks, got %d", 8-rank)
	}
	if file != 8 {
		return fmt.Sprintf("rank 1 describes %d files", file)
	}
	return ""
}

// decodeCastling parses "-" or a non-repeating subset of "KQkq".
func decodeCastling(s string) (CastlingRights, bool) {
	if s == "-" {
		return NoCastling, true
	}
	if s == "" {
		return NoCastling, false
	}
	var cr CastlingRights
	for _, ch := range s {
		var flag CastlingRights
		switch ch {
		case 'K':
			flag = CastleWhiteKing
		case 'Q':
			flag = CastleWhiteQueen
		case 'k':
			flag = CastleBlackKing
		case 'q':
			flag = CastleBlackQueen
		default:
			return NoCastling, false
		}
		if cr&flag != 0 {
			return NoCastling, false
		}
		cr |= flag
	}
	return cr, true
}

// Encode produces the FEN string for p. Castling rights are written in
// KQkq order whatever order they were decoded in, so "QK" comes back as
// "KQ"; fields are joined by single spaces.
func Encode(p *Position) string {
	var sb strings.Builder
	sb.Grow(90)

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			pc := p.squares[SquareAt(rank, file)]
			if pc == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteRune(pc.FENRune())
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if p.sideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteByte(' ')

	// 3. Castling availability
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')

	// 4. En passant target
	if sq, ok := p.EnPassant(); ok {
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')

	// 5. Halfmove clock
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')

	// 6. Fullmove number
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))
	return sb.String()
}

// FEN is shorthand for Encode(p).
func (p *Position) FEN() string { return Encode(p) }

// MustDecode is Decode for FEN strings known to be valid; it panics on error.
func MustDecode(fen string) *Position {
	p, err := Decode(fen)
	if err != nil {
		panic(err)
	}
	return p
}
