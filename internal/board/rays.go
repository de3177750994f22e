package board

// Direction indexes the eight compass directions a sliding piece can travel.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// File and rank step per direction. Walking in (file, rank) space cannot
// wrap around a board edge the way raw +-7/+-9 square offsets can.
var dirDelta = [8]struct{ df, dr int }{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

var (
	rookDirs   = [4]Direction{North, East, South, West}
	bishopDirs = [4]Direction{NorthEast, SouthEast, SouthWest, NorthWest}
)

// rayAttacks[d][sq] is the unobstructed ray from sq to the board edge in
// direction d, excluding sq itself. Built once at init, read-only after.
// A bare edge ray ignores occupancy, so it must never answer an attack
// query directly; it only seeds the blocker-aware walks below.
var rayAttacks [8][64]Bitboard

func initRays() {
	for sq := A1; sq <= H8; sq++ {
		for d := North; d <= NorthWest; d++ {
			delta := dirDelta[d]
			var ray Bitboard
			f, r := sq.File()+delta.df, sq.Rank()+delta.dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				ray = ray.Set(NewSquare(f, r))
				f += delta.df
				r += delta.dr
			}
			rayAttacks[d][sq] = ray
		}
	}
}

// EdgeRay returns the precomputed unobstructed ray from sq in direction d.
func EdgeRay(d Direction, sq Square) Bitboard {
	return rayAttacks[d][sq]
}

// increasing reports whether stepping in d increases the square index,
// which decides whether the nearest blocker on a ray is its LSB or MSB.
func increasing(d Direction) bool {
	delta := dirDelta[d]
	return delta.dr > 0 || (delta.dr == 0 && delta.df > 0)
}

// slidingAttacks walks every given direction from sq and stops at the first
// occupied square, keeping that square in the set. Friendly occupants are
// not filtered here; callers mask them off.
func slidingAttacks(sq Square, occupied Bitboard, dirs []Direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		ray := rayAttacks[d][sq]
		attacks |= ray
		if blockers := ray & occupied; blockers != 0 {
			first := blockers.MSB()
			if increasing(d) {
				first = blockers.LSB()
			}
			attacks &^= rayAttacks[d][first]
		}
	}
	return attacks
}

// RookAttacks returns the squares a rook on sq reaches given the occupancy,
// including the first blocker on each ray.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, rookDirs[:])
}

// BishopAttacks returns the squares a bishop on sq reaches given the
// occupancy, including the first blocker on each ray.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, bishopDirs[:])
}

// QueenAttacks returns the union of rook and bishop attacks from sq.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return RookAttacks(sq, occupied) | BishopAttacks(sq, occupied)
}
