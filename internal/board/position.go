package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	if cr&WhiteKingSideCastle != 0 {
		sb.WriteByte('K')
	}
	if cr&WhiteQueenSideCastle != 0 {
		sb.WriteByte('Q')
	}
	if cr&BlackKingSideCastle != 0 {
		sb.WriteByte('k')
	}
	if cr&BlackQueenSideCastle != 0 {
		sb.WriteByte('q')
	}
	return sb.String()
}

// Position represents a complete chess position. Positions are treated as
// values: Apply returns a fresh snapshot and never mutates its receiver,
// so concurrent readers need no synchronization.
type Position struct {
	// Piece bitboards, indexed [Color][PieceType].
	Pieces [2][6]Bitboard

	// Occupancy, cached from Pieces.
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // target square of the last double push, NoSquare if none
	HalfMoveClock  int    // moves since last pawn move or capture; maintained, not recomputed
	FullMoveNumber int    // starts at 1, incremented after Black's move

	// King positions, cached for check detection.
	KingSquare [2]Square
}

// NewPosition creates the standard starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	next := *p
	return &next
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)

	if p.AllOccupied&bb == 0 {
		return NoPiece
	}

	c := Black
	if p.Occupied[White]&bb != 0 {
		c = White
	}

	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}

	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.AllOccupied&SquareBB(sq) == 0
}

// setPiece places a piece on a square.
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	c := piece.Color()
	pt := piece.Type()
	bb := SquareBB(sq)

	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb

	if pt == King {
		p.KingSquare[c] = sq
	}
}

// removePiece removes and returns the piece on a square.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}

	c := piece.Color()
	pt := piece.Type()
	bb := SquareBB(sq)

	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb

	return piece
}

// movePiece relocates the piece on from to to. The destination must be
// empty; captures are removed by the caller first.
func (p *Position) movePiece(from, to Square) {
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return
	}

	c := piece.Color()
	pt := piece.Type()
	moveBB := SquareBB(from) | SquareBB(to)

	p.Pieces[c][pt] ^= moveBB
	p.Occupied[c] ^= moveBB
	p.AllOccupied ^= moveBB

	if pt == King {
		p.KingSquare[c] = to
	}
}

// findKings refreshes the cached king positions from the piece bitboards.
func (p *Position) findKings() {
	p.KingSquare[White] = p.Pieces[White][King].LSB()
	p.KingSquare[Black] = p.Pieces[Black][King].LSB()
}

// Apply returns the position after playing m, leaving the receiver intact.
// The move is applied as-is: captures are resolved by overwrite, an en
// passant capture removes the passed pawn, castling relocates the rook,
// and a promotion swaps the pawn for the chosen piece. Legality is the
// caller's concern; see IsLegal.
func (p *Position) Apply(m Move) *Position {
	next := p.Copy()
	next.apply(m)
	return next
}

// apply plays m on the position in place. A move whose origin is empty or
// holds a piece of the wrong color is ignored rather than failing, so a
// caller iterating candidate moves never halts mid-scan.
func (p *Position) apply(m Move) {
	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()

	piece := p.PieceAt(from)
	if piece == NoPiece || piece.Color() != us {
		return
	}
	pt := piece.Type()

	captured := NoPiece
	if m.IsEnPassant() {
		// The captured pawn stands behind the target square.
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		captured = p.removePiece(capSq)
	} else if occupant := p.PieceAt(to); occupant != NoPiece {
		captured = occupant
		p.removePiece(to)
	}

	p.movePiece(from, to)

	if m.IsPromotion() {
		promo := m.Promotion()
		p.Pieces[us][Pawn] = p.Pieces[us][Pawn].Clear(to)
		p.Pieces[us][promo] = p.Pieces[us][promo].Set(to)
	}

	if m.IsCastling() {
		var rookFrom, rookTo Square
		if to > from {
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.movePiece(rookFrom, rookTo)
	}

	// Castling rights: lost when the king moves, and per rook corner
	// whenever a move touches it (rook departing or being captured).
	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}

	p.EnPassant = NoSquare
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	}

	if pt == Pawn || captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
}

// String returns a diagram of the position with its state fields.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}
