package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Parse failure kinds. Each malformed field surfaces its own sentinel so
// callers can distinguish them with errors.Is. A failed parse never
// produces a partial position.
var (
	ErrFieldCount     = errors.New("fen: expected 6 space-separated fields")
	ErrPiecePlacement = errors.New("fen: invalid piece placement")
	ErrSideToMove     = errors.New("fen: invalid side to move")
	ErrCastlingRights = errors.New("fen: invalid castling rights")
	ErrEnPassant      = errors.New("fen: invalid en passant target")
)

// ParseFEN parses a FEN string into a Position. All six fields are
// required. Unparsable clock fields do not fail the parse: the half-move
// clock falls back to 0 and the full-move number to 1, which is lossy for
// round-tripping such inputs.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w, got %d", ErrFieldCount, len(parts))
	}

	pos := &Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: %q", ErrSideToMove, parts[1])
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrEnPassant, parts[3])
		}
		// The skipped square of a double push is always on rank 3 or 6.
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return nil, fmt.Errorf("%w: %q not on rank 3 or 6", ErrEnPassant, parts[3])
		}
		pos.EnPassant = sq
	}

	if hmc, err := strconv.Atoi(parts[4]); err == nil && hmc >= 0 {
		pos.HalfMoveClock = hmc
	}
	if fmn, err := strconv.Atoi(parts[5]); err == nil && fmn >= 1 {
		pos.FullMoveNumber = fmn
	}

	pos.findKings()

	return pos, nil
}

// parsePiecePlacement fills the piece bitboards from the first FEN field.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrPiecePlacement, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN lists rank 8 first
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrPiecePlacement, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("%w: unrecognized character %q", ErrPiecePlacement, c)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d covers %d files", ErrPiecePlacement, rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights fills the castling flags from the third FEN field.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.CastlingRights = NoCastling
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			pos.CastlingRights |= WhiteKingSideCastle
		case 'Q':
			pos.CastlingRights |= WhiteQueenSideCastle
		case 'k':
			pos.CastlingRights |= BlackKingSideCastle
		case 'q':
			pos.CastlingRights |= BlackQueenSideCastle
		default:
			return fmt.Errorf("%w: unrecognized character %q", ErrCastlingRights, c)
		}
	}

	return nil
}

// ToFEN returns the FEN representation of the position. It is the exact
// inverse of ParseFEN for any position ParseFEN produced.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
