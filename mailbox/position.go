package mailbox

import "strings"

// CastlingRights is a set of castling availability flags.
//
// Availability is stored and round-tripped through FEN only; no generator
// consults it.
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastleWhiteKing CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastleWhiteQueen
	// Black king-side castling
	CastleBlackKing
	// Black queen-side castling
	CastleBlackQueen

	NoCastling  CastlingRights = 0
	AllCastling                = CastleWhiteKing | CastleWhiteQueen | CastleBlackKing | CastleBlackQueen
)

// String returns the FEN castling field in canonical KQkq order, or "-".
func (cr CastlingRights) String() string {
	if cr&AllCastling == 0 {
		return "-"
	}
	var sb strings.Builder
	if cr&CastleWhiteKing != 0 {
		sb.WriteByte('K')
	}
	if cr&CastleWhiteQueen != 0 {
		sb.WriteByte('Q')
	}
	if cr&CastleBlackKing != 0 {
		sb.WriteByte('k')
	}
	if cr&CastleBlackQueen != 0 {
		sb.WriteByte('q')
	}
	return sb.String()
}

// Position is a mailbox board plus the FEN metadata fields.
//
// Position holds no pointers or slices, so two positions compare equal with
// == exactly when every field matches.
type Position struct {
	// Piece on each square, index = rank*8 + file
	squares [boardSize]Piece

	// Side to move
	sideToMove Color

	// Castling availability (bitmask using CastlingRights flags)
	castling CastlingRights

	// En passant target; only meaningful when hasEnPassant is set
	enPassant    Square
	hasEnPassant bool

	// Half-moves since the last capture or pawn advance
	halfmoveClock int

	// Starts at 1, incremented after Black's move
	fullmoveNumber int
}

// NewPosition returns an empty board with White to move, full castling
// availability, no en passant target and clocks at 0 and 1.
func NewPosition() *Position {
	return &Position{
		sideToMove:     White,
		castling:       AllCastling,
		enPassant:      NoSquare,
		fullmoveNumber: 1,
	}
}

// PieceAt returns the piece on sq, or NoPiece for an empty or off-board square.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return p.squares[sq]
}

// SetPiece places pc on sq, replacing whatever was there. Off-board squares are ignored.
func (p *Position) SetPiece(sq Square, pc Piece) {
	if !sq.Valid() {
		return
	}
	p.squares[sq] = pc
}

// ClearSquare empties sq.
func (p *Position) ClearSquare(sq Square) { p.SetPiece(sq, NoPiece) }

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// SetSideToMove updates the side to play.
func (p *Position) SetSideToMove(c Color) { p.sideToMove = c }

// Castling returns the stored castling availability.
func (p *Position) Castling() CastlingRights { return p.castling }

// SetCastling replaces the castling availability.
func (p *Position) SetCastling(cr CastlingRights) { p.castling = cr & AllCastling }

// EnPassant returns the en passant target square, if the position has one.
func (p *Position) EnPassant() (Square, bool) {
	if !p.hasEnPassant {
		return NoSquare, false
	}
	return p.enPassant, true
}

// SetEnPassant sets the en passant target. An off-board square clears it.
func (p *Position) SetEnPassant(sq Square) {
	if !sq.Valid() {
		p.ClearEnPassant()
		return
	}
	p.enPassant = sq
	p.hasEnPassant = true
}

// ClearEnPassant removes the en passant target.
func (p *Position) ClearEnPassant() {
	p.enPassant = NoSquare
	p.hasEnPassant = false
}

// HalfmoveClock returns the half-move clock.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the full-move number.
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// Count returns how many squares hold pc.
func (p *Position) Count(pc Piece) int {
	n := 0
	for _, sq := range p.squares {
		if sq == pc {
			n++
		}
	}
	return n
}

// Diagram renders the board as eight lines, rank 8 first, using FEN letters
// and '.' for empty squares.
func (p *Position) Diagram() string {
	var sb strings.Builder
	sb.Grow(8 * 9)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb.WriteRune(p.squares[SquareAt(rank, file)].FENRune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
