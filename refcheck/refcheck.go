// Package refcheck compares the mailbox generator against established move
// generators.
//
// References produce legal (or, for goosemg, pseudo-legal) moves for every
// piece type. Only their pawn, knight and bishop moves are compared. A move
// the reference has and the mailbox generator lacks is always a bug; a move
// the mailbox generator has and the reference lacks is either a king-safety
// violation (mailbox moves are pseudo-legal) or the rank-only en passant
// rule.
package refcheck

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"mailbox-chess/mailbox"
)

// ErrNoKing is returned for positions without exactly one king per side;
// the reference engines cannot handle them.
var ErrNoKing = errors.New("refcheck: position needs exactly one king per side")

// ErrReferenceRejected wraps failures of a reference on a position the
// mailbox codec accepted, such as an en passant target on a1.
var ErrReferenceRejected = errors.New("refcheck: reference rejected position")

// Candidate is a move reduced to what every generator agrees on.
type Candidate struct {
	From      mailbox.Square
	To        mailbox.Square
	Promotion mailbox.Kind
}

func (c Candidate) String() string {
	s := c.From.String() + c.To.String()
	if c.Promotion != mailbox.NoKind {
		s += string(mailbox.NewPiece(mailbox.Black, c.Promotion).FENRune())
	}
	return s
}

// Reference generates moves for the side to move of a FEN position.
type Reference interface {
	Name() string
	Moves(fen string) ([]Candidate, error)
}

// Report is the outcome of comparing one reference on one position.
type Report struct {
	Reference string
	FEN       string
	Side      mailbox.Color
	Compared  int         // reference moves considered after filtering
	Missing   []Candidate // reference has, mailbox lacks
	Extra     []Candidate // mailbox has, reference lacks
}

// OK reports whether the mailbox generator produced every reference move.
func (r Report) OK() bool { return len(r.Missing) == 0 }

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d compared", r.Reference, r.Compared)
	if len(r.Missing) > 0 {
		fmt.Fprintf(&sb, ", missing %v", r.Missing)
	}
	if len(r.Extra) > 0 {
		fmt.Fprintf(&sb, ", extra %v", r.Extra)
	}
	return sb.String()
}

// Default returns every built-in reference.
func Default() []Reference {
	return []Reference{Dragontooth{}, Notnil{}, Goose{}}
}

// FromMoves reduces mailbox moves to candidates.
func FromMoves(moves []mailbox.Move) []Candidate {
	out := make([]Candidate, 0, len(moves))
	for _, m := range moves {
		k, _ := m.Promotion()
		out = append(out, Candidate{From: m.From(), To: m.To(), Promotion: k})
	}
	return out
}

// Compare runs ref on fen and diffs it against the mailbox generator for
// the side to move.
func Compare(ref Reference, fen string) (Report, error) {
	pos, err := mailbox.Decode(fen)
	if err != nil {
		return Report{}, fmt.Errorf("refcheck: %w", err)
	}
	if pos.Count(mailbox.WhiteKing) != 1 || pos.Count(mailbox.BlackKing) != 1 {
		return Report{}, ErrNoKing
	}
	side := pos.SideToMove()
	ours := FromMoves(pos.GenerateMoves(side))

	all, err := ref.Moves(fen)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s: %w", ErrReferenceRejected, ref.Name(), err)
	}
	theirs := make([]Candidate, 0, len(all))
	for _, c := range all {
		if generated(pos.PieceAt(c.From), side) {
			theirs = append(theirs, c)
		}
	}

	rep := Report{Reference: ref.Name(), FEN: fen, Side: side, Compared: len(theirs)}
	for _, c := range theirs {
		if !slices.Contains(ours, c) {
			rep.Missing = append(rep.Missing, c)
		}
	}
	for _, c := range ours {
		if !slices.Contains(theirs, c) {
			rep.Extra = append(rep.Extra, c)
		}
	}
	return rep, nil
}

// CompareAll runs Compare for each reference and stops at the first error.
func CompareAll(refs []Reference, fen string) ([]Report, error) {
	reports := make([]Report, 0, len(refs))
	for _, ref := range refs {
		rep, err := Compare(ref, fen)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// generated reports whether the mailbox generator has a rule for pc.
func generated(pc mailbox.Piece, side mailbox.Color) bool {
	if !pc.BelongsTo(side) {
		return false
	}
	switch pc.Kind() {
	case mailbox.Pawn, mailbox.Knight, mailbox.Bishop:
		return true
	}
	return false
}
