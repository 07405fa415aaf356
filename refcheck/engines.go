package refcheck

import (
	"fmt"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"mailbox-chess/mailbox"
)

// Dragontooth uses dragontoothmg's legal move generator.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontoothmg" }

func (Dragontooth) Moves(fen string) ([]Candidate, error) {
	b := dragontoothmg.ParseFen(fen)
	moves := b.GenerateLegalMoves()
	out := make([]Candidate, 0, len(moves))
	for i := range moves {
		m := &moves[i]
		out = append(out, Candidate{
			From:      mailbox.Square(m.From()),
			To:        mailbox.Square(m.To()),
			Promotion: dragontoothKind(m.Promote()),
		})
	}
	return out, nil
}

func dragontoothKind(p dragontoothmg.Piece) mailbox.Kind {
	switch p {
	case dragontoothmg.Queen:
		return mailbox.Queen
	case dragontoothmg.Rook:
		return mailbox.Rook
	case dragontoothmg.Bishop:
		return mailbox.Bishop
	case dragontoothmg.Knight:
		return mailbox.Knight
	default:
		return mailbox.NoKind
	}
}

// Notnil uses notnil/chess valid moves.
type Notnil struct{}

func (Notnil) Name() string { return "notnil/chess" }

func (Notnil) Moves(fen string) ([]Candidate, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse FEN: %w", err)
	}
	game := chess.NewGame(opt)
	moves := game.ValidMoves()
	out := make([]Candidate, 0, len(moves))
	for _, m := range moves {
		out = append(out, Candidate{
			From:      mailbox.Square(m.S1()),
			To:        mailbox.Square(m.S2()),
			Promotion: notnilKind(m.Promo()),
		})
	}
	return out, nil
}

func notnilKind(pt chess.PieceType) mailbox.Kind {
	switch pt {
	case chess.Queen:
		return mailbox.Queen
	case chess.Rook:
		return mailbox.Rook
	case chess.Bishop:
		return mailbox.Bishop
	case chess.Knight:
		return mailbox.Knight
	default:
		return mailbox.NoKind
	}
}

// Goose uses goosemg's pseudo-legal generator, the closest match to ours.
type Goose struct{}

func (Goose) Name() string { return "goosemg" }

func (Goose) Moves(fen string) ([]Candidate, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	moves := b.GeneratePseudoMoves()
	out := make([]Candidate, 0, len(moves))
	for _, m := range moves {
		out = append(out, Candidate{
			From:      mailbox.Square(m.From()),
			To:        mailbox.Square(m.To()),
			Promotion: gooseKind(m.PromotionPiece()),
		})
	}
	return out, nil
}

func gooseKind(p goosemg.Piece) mailbox.Kind {
	switch p {
	case goosemg.WhiteQueen, goosemg.BlackQueen:
		return mailbox.Queen
	case goosemg.WhiteRook, goosemg.BlackRook:
		return mailbox.Rook
	case goosemg.WhiteBishop, goosemg.BlackBishop:
		return mailbox.Bishop
	case goosemg.WhiteKnight, goosemg.BlackKnight:
		return mailbox.Knight
	default:
		return mailbox.NoKind
	}
}
