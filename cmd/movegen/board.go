package main

import (
	"strings"

	"github.com/fatih/color"

	"mailbox-chess/mailbox"
)

// cellColors is indexed by [light square][white piece].
var cellColors = [2][2]*color.Color{
	{color.New(color.BgGreen, color.FgBlack), color.New(color.BgGreen, color.FgHiWhite, color.Bold)},
	{color.New(color.BgHiWhite, color.FgBlack), color.New(color.BgHiWhite, color.FgBlue, color.Bold)},
}

// renderBoard draws rank 8 at the top with file and rank labels.
func renderBoard(pos *mailbox.Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			pc := pos.PieceAt(mailbox.SquareAt(rank, file))
			light, white := 0, 0
			if (rank+file)%2 == 1 {
				light = 1
			}
			if pc.Color() == mailbox.White {
				white = 1
			}
			cell := " . "
			if !pc.IsEmpty() {
				cell = " " + string(pc.FENRune()) + " "
			}
			sb.WriteString(cellColors[light][white].Sprint(cell))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	return sb.String()
}
