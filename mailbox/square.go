package mailbox

import "golang.org/x/exp/constraints"

// Square is a board index in 0..63, rank-major from a1.
//
//	index = rank*8 + file, rank 0 is chess rank "1", file 0 is file 'a'.
type Square int8

// NoSquare is never produced by a successful conversion; it is only the
// value paired with a false ok result.
const NoSquare Square = -1

const boardSize = 64

// SquareAt returns the square on the given rank and file indexes.
func SquareAt(rank, file int) Square { return Square(rank*8 + file) }

// Rank returns the rank index (0 for chess rank "1").
func (s Square) Rank() int { return int(s) / 8 }

// File returns the file index (0 for file 'a').
func (s Square) File() int { return int(s) % 8 }

// Valid reports whether s lies on the board.
func (s Square) Valid() bool { return IsValidSquare(int(s)) }

// String returns the algebraic name ("e4"), or "-" when s is off the board.
func (s Square) String() string {
	name, ok := SquareName(int(s))
	if !ok {
		return "-"
	}
	return name
}

// IsValidSquare reports whether i is a board index.
func IsValidSquare(i int) bool { return i >= 0 && i < boardSize }

// ParseSquare converts a two-character algebraic name such as "e3".
// Anything else reports ok == false.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, false
	}
	return SquareAt(int(rank-'1'), int(file-'a')), true
}

// SquareName converts a board index to its algebraic name. Indexes outside
// 0..63 report ok == false.
func SquareName(i int) (string, bool) {
	if !IsValidSquare(i) {
		return "", false
	}
	return string([]byte{'a' + byte(i%8), '1' + byte(i/8)}), true
}

// stepKeepsFile reports whether from+delta is on the board and lands exactly
// fileStep files away from from. A step that wraps from the h-file to the
// a-file (or back) changes the file by 7 instead and is rejected.
func stepKeepsFile(from Square, delta, fileStep int) bool {
	to := int(from) + delta
	if !IsValidSquare(to) {
		return false
	}
	return to%8-from.File() == fileStep
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
