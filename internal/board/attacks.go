package board

// Precomputed attack tables for the non-sliding pieces. Built once at
// package init and shared read-only afterwards; no writer exists past init.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // capture squares only, per color
)

// Offset lists in (file, rank) space. Building the tables from file/rank
// deltas rejects the wraparound squares that raw +-6/+-10/+-15/+-17
// square arithmetic lets through near the a- and h-files.
var (
	knightOffsets = [8]struct{ df, dr int }{
		{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingOffsets = [8]struct{ df, dr int }{
		{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
	}
)

func init() {
	initRays()
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		var attacks Bitboard
		for _, o := range knightOffsets {
			f, r := sq.File()+o.df, sq.Rank()+o.dr
			if f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				attacks = attacks.Set(NewSquare(f, r))
			}
		}
		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		var attacks Bitboard
		for _, o := range kingOffsets {
			f, r := sq.File()+o.df, sq.Rank()+o.dr
			if f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				attacks = attacks.Set(NewSquare(f, r))
			}
		}
		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	// Capture diagonals only. A pawn never attacks the square it pushes to.
	for sq := A1; sq <= H8; sq++ {
		f, r := sq.File(), sq.Rank()
		for _, df := range [2]int{-1, 1} {
			if f+df < 0 || f+df > 7 {
				continue
			}
			if r+1 <= 7 {
				pawnAttacks[White][sq] = pawnAttacks[White][sq].Set(NewSquare(f+df, r+1))
			}
			if r-1 >= 0 {
				pawnAttacks[Black][sq] = pawnAttacks[Black][sq].Set(NewSquare(f+df, r-1))
			}
		}
	}
}

// KnightAttacks returns the knight attack set for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack set for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the capture squares of a pawn of the given color.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// AttackersByColor returns the pieces of color c attacking sq under the
// given occupancy. Sliding pieces honor blockers; pawns contribute their
// capture diagonals only.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	return (pawnAttacks[c.Other()][sq] & p.Pieces[c][Pawn]) |
		(knightAttacks[sq] & p.Pieces[c][Knight]) |
		(kingAttacks[sq] & p.Pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (p.Pieces[c][Bishop] | p.Pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (p.Pieces[c][Rook] | p.Pieces[c][Queen]))
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.AllOccupied) != 0
}

// InCheck reports whether the side to move's king is attacked.
// A board without that king is never in check.
func (p *Position) InCheck() bool {
	ksq := p.Pieces[p.SideToMove][King].LSB()
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, p.SideToMove.Other())
}
