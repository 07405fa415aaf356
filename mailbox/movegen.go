package mailbox

// Generation filters
const (
	genAll = iota
	genCaptures
	genQuiets
)

// Knight jumps as index deltas. Several of them land on the board after
// wrapping around an edge, so every target is also checked for knight shape.
var knightDeltas = [8]int{17, 15, 10, 6, -6, -10, -15, -17}

// Bishop rays as index deltas paired with the file change of one step.
// Directions: 0=NE, 1=NW, 2=SW, 3=SE
var bishopDirs = [4]struct{ delta, fileStep int }{
	{9, 1},
	{7, -1},
	{-9, -1},
	{-7, 1},
}

// GenerateMoves returns the pseudo-legal moves for side. The position is
// only read; side does not have to match the side to move.
func (p *Position) GenerateMoves(side Color) []Move {
	return p.GenerateMovesInto(side, make([]Move, 0, 64))
}

// GenerateMovesInto appends the pseudo-legal moves for side to dst and
// returns the extended slice. It does not allocate when dst has room.
//
// Moves are ordered by ascending source square; moves from one square are
// contiguous.
func (p *Position) GenerateMovesInto(side Color, dst []Move) []Move {
	return p.generateFilteredInto(side, dst, genAll)
}

// GenerateCaptures returns only captures, en passant and capturing promotions.
func (p *Position) GenerateCaptures(side Color) []Move {
	return p.GenerateCapturesInto(side, make([]Move, 0, 32))
}

// GenerateCapturesInto is the appending form of GenerateCaptures.
func (p *Position) GenerateCapturesInto(side Color, dst []Move) []Move {
	return p.generateFilteredInto(side, dst, genCaptures)
}

// GenerateQuiets returns every non-capturing move, including quiet promotions.
func (p *Position) GenerateQuiets(side Color) []Move {
	return p.GenerateQuietsInto(side, make([]Move, 0, 64))
}

// GenerateQuietsInto is the appending form of GenerateQuiets.
func (p *Position) GenerateQuietsInto(side Color, dst []Move) []Move {
	return p.generateFilteredInto(side, dst, genQuiets)
}

func (p *Position) generateFilteredInto(side Color, dst []Move, filter int) []Move {
	if side != White && side != Black {
		return dst
	}
	for i := 0; i < boardSize; i++ {
		sq := Square(i)
		pc := p.squares[sq]
		if !pc.BelongsTo(side) {
			continue
		}
		switch pc.Kind() {
		case Pawn:
			dst = p.pawnMoves(dst, sq, pc, filter)
		case Knight:
			dst = p.knightMoves(dst, sq, pc, filter)
		case Bishop:
			dst = p.bishopMoves(dst, sq, pc, filter)
		}
		// Rook, queen and king have no rule here.
	}
	return dst
}

// add appends m unless the filter excludes its kind.
func add(dst []Move, m Move, filter int) []Move {
	switch filter {
	case genCaptures:
		if !m.Kind().IsCapture() {
			return dst
		}
	case genQuiets:
		if m.Kind().IsCapture() {
			return dst
		}
	}
	return append(dst, m)
}

// addPromotions appends one move per promotion kind.
func addPromotions(dst []Move, from, to Square, pc, captured Piece, kind MoveKind, filter int) []Move {
	for _, k := range promotionKinds {
		dst = add(dst, NewMove(from, to, pc, captured, kind, k), filter)
	}
	return dst
}

// pawnMoves generates pushes, double pushes, diagonal captures, promotions
// and en passant for the pawn pc on from.
func (p *Position) pawnMoves(dst []Move, from Square, pc Piece, filter int) []Move {
	side := pc.Color()
	forward, homeRank, lastRank := 8, 1, 7
	if side == Black {
		forward, homeRank, lastRank = -8, 6, 0
	}

	// Single and double push
	one := int(from) + forward
	if IsValidSquare(one) && p.squares[one] == NoPiece {
		to := Square(one)
		if to.Rank() == lastRank {
			dst = addPromotions(dst, from, to, pc, NoPiece, MovePromotion, filter)
		} else {
			dst = add(dst, NewMove(from, to, pc, NoPiece, MoveNormal, NoKind), filter)
		}

		two := one + forward
		if from.Rank() == homeRank && IsValidSquare(two) && p.squares[two] == NoPiece {
			dst = add(dst, NewMove(from, Square(two), pc, NoPiece, MoveDoublePawnPush, NoKind), filter)
		}
	}

	// Diagonal captures
	for _, fileStep := range [2]int{-1, 1} {
		delta := forward + fileStep
		if !stepKeepsFile(from, delta, fileStep) {
			continue
		}
		to := Square(int(from) + delta)
		target := p.squares[to]
		if !target.BelongsTo(side.Opponent()) || to.Rank() == from.Rank() {
			continue
		}
		if to.Rank() == lastRank {
			dst = addPromotions(dst, from, to, pc, target, MovePromotionCapture, filter)
		} else {
			dst = add(dst, NewMove(from, to, pc, target, MoveCapture, NoKind), filter)
		}
	}

	// En passant: only rank adjacency to the target is checked, not the file.
	if ep, ok := p.EnPassant(); ok && from.Rank()+forward/8 == ep.Rank() {
		captured := NewPiece(side.Opponent(), Pawn)
		dst = add(dst, NewMove(from, ep, pc, captured, MoveEnPassant, NoKind), filter)
	}
	return dst
}

// knightMoves generates the jumps of the knight pc on from.
func (p *Position) knightMoves(dst []Move, from Square, pc Piece, filter int) []Move {
	side := pc.Color()
	for _, delta := range knightDeltas {
		t := int(from) + delta
		if !IsValidSquare(t) {
			continue
		}
		to := Square(t)
		dr := abs(to.Rank() - from.Rank())
		df := abs(to.File() - from.File())
		if dr > 2 || df > 2 || dr+df != 3 {
			continue
		}
		target := p.squares[to]
		switch {
		case target == NoPiece:
			dst = add(dst, NewMove(from, to, pc, NoPiece, MoveNormal, NoKind), filter)
		case target.BelongsTo(side.Opponent()):
			dst = add(dst, NewMove(from, to, pc, target, MoveCapture, NoKind), filter)
		}
	}
	return dst
}

// bishopMoves walks the four diagonals from the bishop pc on from until the
// board edge or a piece stops each ray.
func (p *Position) bishopMoves(dst []Move, from Square, pc Piece, filter int) []Move {
	side := pc.Color()
	for _, dir := range bishopDirs {
		cur := from
		for stepKeepsFile(cur, dir.delta, dir.fileStep) {
			to := Square(int(cur) + dir.delta)
			target := p.squares[to]
			if target == NoPiece {
				dst = add(dst, NewMove(from, to, pc, NoPiece, MoveNormal, NoKind), filter)
				cur = to
				continue
			}
			if target.BelongsTo(side.Opponent()) {
				dst = add(dst, NewMove(from, to, pc, target, MoveCapture, NoKind), filter)
			}
			break
		}
	}
	return dst
}
