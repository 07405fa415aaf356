package mailbox

// Kind is the colourless type of a piece.
type Kind uint8

const (
	NoKind Kind = 0
	Pawn   Kind = 1
	Knight Kind = 2
	Bishop Kind = 3
	Rook   Kind = 4
	Queen  Kind = 5
	King   Kind = 6
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Color is the side owning a piece. NoColor only ever describes an empty square.
type Color uint8

const (
	White   Color = 0
	Black   Color = 1
	NoColor Color = 2
)

// Opponent returns the other side. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Piece is a kind tagged with a colour.
//
// The low three bits hold the Kind and bit 3 is set for Black pieces, so
// the owning side and the colourless type are each one mask away.
type Piece uint8

const blackBit Piece = 8

const (
	NoPiece Piece = 0

	WhitePawn   = Piece(Pawn)
	WhiteKnight = Piece(Knight)
	WhiteBishop = Piece(Bishop)
	WhiteRook   = Piece(Rook)
	WhiteQueen  = Piece(Queen)
	WhiteKing   = Piece(King)

	BlackPawn   = Piece(Pawn) | blackBit
	BlackKnight = Piece(Knight) | blackBit
	BlackBishop = Piece(Bishop) | blackBit
	BlackRook   = Piece(Rook) | blackBit
	BlackQueen  = Piece(Queen) | blackBit
	BlackKing   = Piece(King) | blackBit
)

// NewPiece combines a side with a kind. NoKind (or an unknown colour) yields NoPiece.
func NewPiece(c Color, k Kind) Piece {
	if k == NoKind || k > King {
		return NoPiece
	}
	switch c {
	case White:
		return Piece(k)
	case Black:
		return Piece(k) | blackBit
	default:
		return NoPiece
	}
}

// Kind returns the colourless type of the piece.
func (p Piece) Kind() Kind { return Kind(p &^ blackBit) }

// Color returns the owning side, or NoColor for an empty square.
func (p Piece) Color() Color {
	if p == NoPiece {
		return NoColor
	}
	if p&blackBit != 0 {
		return Black
	}
	return White
}

// IsEmpty reports whether p is NoPiece.
func (p Piece) IsEmpty() bool { return p == NoPiece }

// BelongsTo reports whether p is a real piece owned by side c.
func (p Piece) BelongsTo(c Color) bool {
	return p != NoPiece && p.Color() == c
}

// SameKind reports whether both pieces have the same type regardless of colour.
func (p Piece) SameKind(o Piece) bool { return p.Kind() == o.Kind() }

// pieceLetters maps a kind to its uppercase FEN letter.
var pieceLetters = [...]rune{NoKind: '.', Pawn: 'P', Knight: 'N', Bishop: 'B', Rook: 'R', Queen: 'Q', King: 'K'}

// PieceFromFEN converts a FEN piece letter. Any other rune reports false.
func PieceFromFEN(ch rune) (Piece, bool) {
	switch ch {
	case 'P':
		return WhitePawn, true
	case 'N':
		return WhiteKnight, true
	case 'B':
		return WhiteBishop, true
	case 'R':
		return WhiteRook, true
	case 'Q':
		return WhiteQueen, true
	case 'K':
		return WhiteKing, true
	case 'p':
		return BlackPawn, true
	case 'n':
		return BlackKnight, true
	case 'b':
		return BlackBishop, true
	case 'r':
		return BlackRook, true
	case 'q':
		return BlackQueen, true
	case 'k':
		return BlackKing, true
	default:
		return NoPiece, false
	}
}

// FENRune returns the FEN letter for p: uppercase for White, lowercase for
// Black, '.' for an empty square.
func (p Piece) FENRune() rune {
	k := p.Kind()
	if k > King {
		return '?'
	}
	r := pieceLetters[k]
	if p.Color() == Black {
		r += 'a' - 'A'
	}
	return r
}

func (p Piece) String() string { return string(p.FENRune()) }
