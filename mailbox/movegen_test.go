package mailbox_test

import (
	"sort"
	"sync"
	"testing"

	"mailbox-chess/mailbox"
)

func mustDecode(t *testing.T, fen string) *mailbox.Position {
	t.Helper()
	p, err := mailbox.Decode(fen)
	if err != nil {
		t.Fatalf("Decode(%q): %v", fen, err)
	}
	return p
}

// targets returns the sorted destination squares of moves.
func targets(moves []mailbox.Move) []int {
	out := make([]int, 0, len(moves))
	for _, m := range moves {
		out = append(out, int(m.To()))
	}
	sort.Ints(out)
	return out
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func countKind(moves []mailbox.Move, k mailbox.MoveKind) int {
	n := 0
	for _, m := range moves {
		if m.Kind() == k {
			n++
		}
	}
	return n
}

func movedBy(moves []mailbox.Move, pc mailbox.Piece) []mailbox.Move {
	var out []mailbox.Move
	for _, m := range moves {
		if m.MovedPiece() == pc {
			out = append(out, m)
		}
	}
	return out
}

func TestLonePawnSingleAndDoublePush(t *testing.T) {
	p := mustDecode(t, "8/8/8/8/8/8/P7/8 w - - 0 1")
	moves := p.GenerateMoves(mailbox.White)
	if len(moves) != 2 {
		t.Fatalf("got %d moves want 2: %v", len(moves), moves)
	}
	if moves[0].From() != 8 || moves[0].To() != 16 || moves[0].Kind() != mailbox.MoveNormal {
		t.Fatalf("first move: got %v kind %v want a2a3 normal", moves[0], moves[0].Kind())
	}
	if moves[1].From() != 8 || moves[1].To() != 24 || moves[1].Kind() != mailbox.MoveDoublePawnPush {
		t.Fatalf("second move: got %v kind %v want a2a4 double push", moves[1], moves[1].Kind())
	}
	for _, m := range moves {
		if m.IsCapture() || m.PromotionPiece() != mailbox.NoPiece {
			t.Fatalf("unexpected capture or promotion %v", m)
		}
	}
}

func TestCornerKnight(t *testing.T) {
	p := mustDecode(t, "8/8/8/8/8/8/8/N7 w - - 0 1")
	moves := p.GenerateMoves(mailbox.White)
	if got := targets(moves); !sameInts(got, []int{10, 17}) {
		t.Fatalf("targets: got %v want [10 17]", got)
	}
	if countKind(moves, mailbox.MoveNormal) != 2 {
		t.Fatalf("expected two normal moves, got %v", moves)
	}
}

func TestUnblockedBishop(t *testing.T) {
	p := mustDecode(t, "8/8/8/8/3B4/8/8/8 w - - 0 1")
	moves := p.GenerateMoves(mailbox.White)
	want := []int{0, 6, 9, 13, 18, 20, 34, 36, 41, 45, 48, 54, 63}
	if got := targets(moves); !sameInts(got, want) {
		t.Fatalf("targets: got %v want %v", got, want)
	}
	if countKind(moves, mailbox.MoveNormal) != 13 {
		t.Fatalf("expected 13 normal moves")
	}
}

func TestPromotionPush(t *testing.T) {
	p := mustDecode(t, "8/P7/8/8/8/8/8/8 w - - 0 1")
	moves := p.GenerateMoves(mailbox.White)
	if len(moves) != 4 {
		t.Fatalf("got %d moves want 4: %v", len(moves), moves)
	}
	wantKinds := []mailbox.Kind{mailbox.Queen, mailbox.Rook, mailbox.Bishop, mailbox.Knight}
	for i, m := range moves {
		if m.From() != 48 || m.To() != 56 || m.Kind() != mailbox.MovePromotion {
			t.Fatalf("move %d: got %v kind %v", i, m, m.Kind())
		}
		k, ok := m.Promotion()
		if !ok || k != wantKinds[i] {
			t.Fatalf("move %d: promotion got (%v,%v) want %v", i, k, ok, wantKinds[i])
		}
		if m.PromotionPiece() != mailbox.NewPiece(mailbox.White, wantKinds[i]) {
			t.Fatalf("move %d: promotion piece %v", i, m.PromotionPiece())
		}
	}
	if moves[0].String() != "a7a8q" || moves[3].String() != "a7a8n" {
		t.Fatalf("unexpected notation %s .. %s", moves[0], moves[3])
	}
}

func TestPromotionCapturesAndQuiets(t *testing.T) {
	p := mustDecode(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	moves := p.GenerateMoves(mailbox.White)
	if len(moves) != 8 {
		t.Fatalf("got %d moves want 8: %v", len(moves), moves)
	}
	caps := p.GenerateCaptures(mailbox.White)
	if len(caps) != 4 || countKind(caps, mailbox.MovePromotionCapture) != 4 {
		t.Fatalf("captures: got %v", caps)
	}
	for _, m := range caps {
		if m.To() != 57 || m.CapturedPiece() != mailbox.BlackKnight {
			t.Fatalf("capture promotion: got %v captured %v", m, m.CapturedPiece())
		}
	}
	quiets := p.GenerateQuiets(mailbox.White)
	if len(quiets) != 4 || countKind(quiets, mailbox.MovePromotion) != 4 {
		t.Fatalf("quiets: got %v", quiets)
	}

	black := p.GenerateMoves(mailbox.Black)
	if got := targets(black); !sameInts(got, []int{40, 42, 51}) {
		t.Fatalf("black knight targets: got %v want [40 42 51]", got)
	}
}

func TestBlackPawnMoves(t *testing.T) {
	p := mustDecode(t, "8/7p/8/8/8/8/8/8 b - - 0 1")
	moves := p.GenerateMoves(mailbox.Black)
	if len(moves) != 2 {
		t.Fatalf("got %d moves want 2", len(moves))
	}
	if moves[0].To() != 47 || moves[0].Kind() != mailbox.MoveNormal {
		t.Fatalf("single push: got %v", moves[0])
	}
	if moves[1].To() != 39 || moves[1].Kind() != mailbox.MoveDoublePawnPush {
		t.Fatalf("double push: got %v", moves[1])
	}
	if len(p.GenerateMoves(mailbox.White)) != 0 {
		t.Fatalf("white has no pieces and must have no moves")
	}

	promo := mustDecode(t, "8/8/8/8/8/8/p7/8 b - - 0 1").GenerateMoves(mailbox.Black)
	if len(promo) != 4 {
		t.Fatalf("black promotion: got %d moves want 4", len(promo))
	}
	for _, m := range promo {
		if m.To() != 0 || m.PromotionPiece().Color() != mailbox.Black {
			t.Fatalf("black promotion: got %v piece %v", m, m.PromotionPiece())
		}
	}
}

func TestPawnPushBlocked(t *testing.T) {
	if moves := mustDecode(t, "8/8/8/8/8/p7/P7/8 w - - 0 1").GenerateMoves(mailbox.White); len(moves) != 0 {
		t.Fatalf("blocked pawn: got %v want none", moves)
	}
	moves := mustDecode(t, "8/8/8/8/p7/8/P7/8 w - - 0 1").GenerateMoves(mailbox.White)
	if len(moves) != 1 || moves[0].To() != 16 {
		t.Fatalf("double push blocked: got %v want only a2a3", moves)
	}
}

func TestPawnCapturesDoNotWrap(t *testing.T) {
	// a3+7 wraps to h3 and h2+9 wraps to a4; both hold black pawns.
	p := mustDecode(t, "8/8/8/8/p7/P6p/7P/8 w - - 0 1")
	if moves := p.GenerateMoves(mailbox.White); len(moves) != 0 {
		t.Fatalf("expected no moves, got %v", moves)
	}
	p = mustDecode(t, "8/8/8/8/1p4p1/P6P/8/8 w - - 0 1")
	caps := p.GenerateCaptures(mailbox.White)
	if len(caps) != 2 {
		t.Fatalf("got %v want a3xb4 and h3xg4", caps)
	}
	if caps[0].String() != "a3b4" || caps[1].String() != "h3g4" {
		t.Fatalf("got %v %v", caps[0], caps[1])
	}
}

func TestEnPassant(t *testing.T) {
	p := mustDecode(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	moves := p.GenerateMoves(mailbox.White)
	if len(moves) != 2 {
		t.Fatalf("got %v want e5e6 and e5d6", moves)
	}
	caps := p.GenerateCaptures(mailbox.White)
	if len(caps) != 1 || caps[0].Kind() != mailbox.MoveEnPassant {
		t.Fatalf("captures: got %v", caps)
	}
	if caps[0].String() != "e5d6" || caps[0].CapturedPiece() != mailbox.BlackPawn {
		t.Fatalf("en passant: got %v captured %v", caps[0], caps[0].CapturedPiece())
	}

	black := mustDecode(t, "7k/8/8/8/3pP3/8/8/K7 b - e3 0 1").GenerateMoves(mailbox.Black)
	if len(black) != 2 || black[1].Kind() != mailbox.MoveEnPassant || black[1].CapturedPiece() != mailbox.WhitePawn {
		t.Fatalf("black en passant: got %v", black)
	}
	if black[1].String() != "d4e3" {
		t.Fatalf("black en passant: got %v want d4e3", black[1])
	}
}

func TestEnPassantChecksRankOnly(t *testing.T) {
	// b5 is not adjacent to d6 but sits on the right rank, so it qualifies too.
	p := mustDecode(t, "k7/8/8/1P1pP3/8/8/8/7K w - d6 0 2")
	if got := countKind(p.GenerateMoves(mailbox.White), mailbox.MoveEnPassant); got != 2 {
		t.Fatalf("en passant moves: got %d want 2", got)
	}
	// Wrong rank: no en passant at all.
	p = mustDecode(t, "k7/8/8/3p4/4P3/8/8/7K w - d6 0 2")
	if got := countKind(p.GenerateMoves(mailbox.White), mailbox.MoveEnPassant); got != 0 {
		t.Fatalf("en passant moves: got %d want 0", got)
	}
}

func TestKnightCapturesAndOwnPieces(t *testing.T) {
	p := mustDecode(t, "8/8/2P1p3/8/3N4/8/8/8 w - - 0 1")
	knight := movedBy(p.GenerateMoves(mailbox.White), mailbox.WhiteKnight)
	if got := targets(knight); !sameInts(got, []int{10, 12, 17, 21, 33, 37, 44}) {
		t.Fatalf("knight targets: got %v", got)
	}
	caps := p.GenerateCaptures(mailbox.White)
	if len(caps) != 1 || caps[0].String() != "d4e6" || caps[0].CapturedPiece() != mailbox.BlackPawn {
		t.Fatalf("captures: got %v", caps)
	}
}

func TestBishopRayTermination(t *testing.T) {
	p := mustDecode(t, "8/8/8/2p5/3B4/4P3/8/8 w - - 0 1")
	bishop := movedBy(p.GenerateMoves(mailbox.White), mailbox.WhiteBishop)
	if got := targets(bishop); !sameInts(got, []int{0, 9, 18, 34, 36, 45, 54, 63}) {
		t.Fatalf("bishop targets: got %v", got)
	}
	if countKind(bishop, mailbox.MoveCapture) != 1 {
		t.Fatalf("expected one capture on c5, got %v", bishop)
	}
}

func TestNoEdgeWrap(t *testing.T) {
	p := mustDecode(t, "8/8/8/8/7B/8/8/8 w - - 0 1")
	moves := p.GenerateMoves(mailbox.White)
	if len(moves) != 7 {
		t.Fatalf("h4 bishop: got %d moves want 7: %v", len(moves), moves)
	}
	for _, m := range moves {
		if m.To().File() == 0 {
			t.Fatalf("h4 bishop wrapped to the a-file: %v", m)
		}
	}

	for rank := 0; rank < 8; rank++ {
		for _, file := range []int{0, 7} {
			pos := mailbox.NewPosition()
			from := mailbox.SquareAt(rank, file)
			pos.SetPiece(from, mailbox.WhiteKnight)
			for _, m := range pos.GenerateMoves(mailbox.White) {
				if d := m.To().File() - file; d > 2 || d < -2 {
					t.Fatalf("knight on %v wrapped to %v", from, m.To())
				}
			}
		}
	}
}

func TestStartPosition(t *testing.T) {
	p := mustDecode(t, mailbox.FENStartPos)
	for _, side := range []mailbox.Color{mailbox.White, mailbox.Black} {
		moves := p.GenerateMoves(side)
		if len(moves) != 20 {
			t.Fatalf("%v: got %d moves want 20", side, len(moves))
		}
		for _, m := range moves {
			if !m.MovedPiece().BelongsTo(side) {
				t.Fatalf("%v: move %v moves a %v", side, m, m.MovedPiece())
			}
		}
		if got := countKind(moves, mailbox.MoveDoublePawnPush); got != 8 {
			t.Fatalf("%v: double pushes got %d want 8", side, got)
		}
		if len(p.GenerateCaptures(side)) != 0 {
			t.Fatalf("%v: start position has no captures", side)
		}
	}
}

func TestMoveOrdering(t *testing.T) {
	p := mustDecode(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := p.GenerateMoves(mailbox.White)
	seen := map[mailbox.Square]bool{}
	for i, m := range moves {
		if i > 0 && m.From() < moves[i-1].From() {
			t.Fatalf("move %d (%v) comes after a higher source square", i, m)
		}
		if i > 0 && m.From() != moves[i-1].From() && seen[m.From()] {
			t.Fatalf("moves from %v are not contiguous", m.From())
		}
		seen[m.From()] = true
	}
}

func TestGenerateDoesNotMutate(t *testing.T) {
	p := mustDecode(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	before := *p
	_ = p.GenerateMoves(mailbox.White)
	_ = p.GenerateMoves(mailbox.Black)
	if *p != before {
		t.Fatalf("generation changed the position")
	}
}

func TestGenerateConcurrentReaders(t *testing.T) {
	p := mustDecode(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	want := p.GenerateMoves(mailbox.White)
	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := p.GenerateMoves(mailbox.White)
			if len(got) != len(want) {
				errs <- "length mismatch"
				return
			}
			for j := range got {
				if got[j] != want[j] {
					errs <- "move mismatch"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

// Ensure GenerateMovesInto reuses the provided buffer and avoids allocations when capacity suffices.
func TestGenerateMovesInto_NoAlloc(t *testing.T) {
	p := mustDecode(t, mailbox.FENStartPos)
	buf := make([]mailbox.Move, 0, 256)
	allocs := testing.AllocsPerRun(100, func() {
		buf = p.GenerateMovesInto(mailbox.White, buf)
		if len(buf) != 20 {
			t.Fatalf("expected 20 moves, got %d", len(buf))
		}
		buf = buf[:0]
	})
	if allocs != 0 {
		t.Fatalf("expected 0 allocs, got %f", allocs)
	}
}

func TestNoColorGeneratesNothing(t *testing.T) {
	p := mustDecode(t, mailbox.FENStartPos)
	if moves := p.GenerateMoves(mailbox.NoColor); len(moves) != 0 {
		t.Fatalf("got %d moves for NoColor", len(moves))
	}
}
