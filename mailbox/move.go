package mailbox

// MoveKind classifies a generated move.
type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MoveDoublePawnPush
	MoveCapture
	MoveEnPassant
	MovePromotion
	MovePromotionCapture
	MoveCastling // reserved, never generated
	MoveInvalid
)

func (k MoveKind) String() string {
	switch k {
	case MoveNormal:
		return "normal"
	case MoveDoublePawnPush:
		return "double-pawn-push"
	case MoveCapture:
		return "capture"
	case MoveEnPassant:
		return "en-passant"
	case MovePromotion:
		return "promotion"
	case MovePromotionCapture:
		return "promotion-capture"
	case MoveCastling:
		return "castling"
	default:
		return "invalid"
	}
}

// IsCapture reports whether the kind removes an opposing piece.
func (k MoveKind) IsCapture() bool {
	return k == MoveCapture || k == MoveEnPassant || k == MovePromotionCapture
}

// IsPromotion reports whether the kind replaces the pawn with another piece.
func (k MoveKind) IsPromotion() bool {
	return k == MovePromotion || k == MovePromotionCapture
}

// Move encodes a generated move in a 32-bit value.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	moveKindShift    = 20 // 3 bits
	movePromoteShift = 23 // 3 bits
)

// promotionKinds is the order in which promotions are emitted.
var promotionKinds = [4]Kind{Queen, Rook, Bishop, Knight}

// NewMove constructs a Move value from components. The promotion kind is
// kept only for the two promotion move kinds.
func NewMove(from, to Square, piece, captured Piece, kind MoveKind, promotion Kind) Move {
	if !kind.IsPromotion() {
		promotion = NoKind
	}
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(kind&0x7) << moveKindShift) |
		(uint32(promotion&0x7) << movePromoteShift)
	return Move(m)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// MovedPiece returns the piece that moves.
func (m Move) MovedPiece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// CapturedPiece returns the captured piece, or NoPiece.
func (m Move) CapturedPiece() Piece { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }

// Kind returns the move classification.
func (m Move) Kind() MoveKind { return MoveKind((uint32(m) >> moveKindShift) & 0x7) }

// Promotion returns the promoted kind and whether the move is a promotion.
func (m Move) Promotion() (Kind, bool) {
	if !m.Kind().IsPromotion() {
		return NoKind, false
	}
	return Kind((uint32(m) >> movePromoteShift) & 0x7), true
}

// PromotionPiece returns the promoted piece in the mover's colour, or NoPiece.
func (m Move) PromotionPiece() Piece {
	k, ok := m.Promotion()
	if !ok {
		return NoPiece
	}
	return NewPiece(m.MovedPiece().Color(), k)
}

// IsCapture reports whether the move captures (including en passant).
func (m Move) IsCapture() bool { return m.Kind().IsCapture() }

// String produces the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	buf := make([]byte, 0, 5)
	buf = append(buf, m.From().String()...)
	buf = append(buf, m.To().String()...)
	if k, ok := m.Promotion(); ok {
		buf = append(buf, byte(NewPiece(Black, k).FENRune()))
	}
	return string(buf)
}
