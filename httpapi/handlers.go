package httpapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mailbox-chess/mailbox"
	"mailbox-chess/movestore"
	"mailbox-chess/refcheck"
)

// Handler holds the route handlers. It is stateless; every request decodes
// its own position.
type Handler struct{}

type fenRequest struct {
	FEN string `json:"fen"`
}

type movesRequest struct {
	FEN    string `json:"fen"`
	Side   string `json:"side"`
	Filter string `json:"filter"`
}

type movesResponse struct {
	FEN   string                 `json:"fen"`
	Side  string                 `json:"side"`
	Count int                    `json:"count"`
	Moves []movestore.MoveRecord `json:"moves"`
}

type positionResponse struct {
	FEN       string `json:"fen"`
	Side      string `json:"side"`
	Castling  string `json:"castling"`
	EnPassant string `json:"en_passant"`
	Halfmove  int    `json:"halfmove"`
	Fullmove  int    `json:"fullmove"`
	Board     string `json:"board"`
}

type squareResponse struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Rank  int    `json:"rank"`
	File  int    `json:"file"`
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) Square(c *fiber.Ctx) error {
	name := strings.ToLower(c.Params("name"))
	sq, ok := mailbox.ParseSquare(name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid square " + name,
		})
	}
	return c.JSON(squareResponse{Name: sq.String(), Index: int(sq), Rank: sq.Rank(), File: sq.File()})
}

func (h *Handler) FEN(c *fiber.Ctx) error {
	var req fenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	pos, err := mailbox.Decode(req.FEN)
	if err != nil {
		return fenError(c, err)
	}
	resp := positionResponse{
		FEN:       pos.FEN(),
		Side:      pos.SideToMove().String(),
		Castling:  pos.Castling().String(),
		EnPassant: "-",
		Halfmove:  pos.HalfmoveClock(),
		Fullmove:  pos.FullmoveNumber(),
		Board:     pos.Diagram(),
	}
	if ep, ok := pos.EnPassant(); ok {
		resp.EnPassant = ep.String()
	}
	return c.JSON(resp)
}

func (h *Handler) Moves(c *fiber.Ctx) error {
	var req movesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	pos, err := mailbox.Decode(req.FEN)
	if err != nil {
		return fenError(c, err)
	}
	side, ok := parseSide(req.Side, pos.SideToMove())
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "side must be white or black")
	}

	var moves []mailbox.Move
	switch req.Filter {
	case "", "all":
		moves = pos.GenerateMoves(side)
	case "captures":
		moves = pos.GenerateCaptures(side)
	case "quiets":
		moves = pos.GenerateQuiets(side)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "filter must be all, captures or quiets")
	}

	return c.JSON(movesResponse{
		FEN:   pos.FEN(),
		Side:  side.String(),
		Count: len(moves),
		Moves: movestore.RecordsFor(pos, side, moves),
	})
}

func (h *Handler) RefCheck(c *fiber.Ctx) error {
	var req fenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	reports, err := refcheck.CompareAll(refcheck.Default(), req.FEN)
	switch {
	case errors.Is(err, mailbox.ErrInvalidFEN):
		return fenError(c, err)
	case errors.Is(err, refcheck.ErrNoKing), errors.Is(err, refcheck.ErrReferenceRejected):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case err != nil:
		return err
	}

	out := make([]fiber.Map, 0, len(reports))
	for _, rep := range reports {
		out = append(out, fiber.Map{
			"reference": rep.Reference,
			"compared":  rep.Compared,
			"ok":        rep.OK(),
			"missing":   candidateNames(rep.Missing),
			"extra":     candidateNames(rep.Extra),
		})
	}
	return c.JSON(fiber.Map{"fen": req.FEN, "reports": out})
}

func candidateNames(cs []refcheck.Candidate) []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.String())
	}
	return names
}

func parseSide(s string, def mailbox.Color) (mailbox.Color, bool) {
	switch strings.ToLower(s) {
	case "":
		return def, true
	case "w", "white":
		return mailbox.White, true
	case "b", "black":
		return mailbox.Black, true
	}
	return mailbox.NoColor, false
}

func fenError(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	var fe *mailbox.FENFormatError
	if errors.As(err, &fe) {
		body["field"] = fe.Field
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
