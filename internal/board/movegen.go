package board

// PieceMoves returns the pseudo-legal moves of the piece standing on sq:
// every destination reachable under the piece's movement rule that does
// not hold a friendly piece, with no regard for the mover's king. An
// invalid or empty origin yields an empty list rather than an error.
func (p *Position) PieceMoves(sq Square) []Move {
	if !sq.IsValid() {
		return nil
	}
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return nil
	}

	us := piece.Color()
	switch piece.Type() {
	case Pawn:
		return p.pawnMoves(sq, us)
	case Knight:
		return p.offsetMoves(sq, us, knightAttacks[sq])
	case Bishop:
		return p.sliderMoves(sq, us, BishopAttacks(sq, p.AllOccupied))
	case Rook:
		return p.sliderMoves(sq, us, RookAttacks(sq, p.AllOccupied))
	case Queen:
		return p.sliderMoves(sq, us, QueenAttacks(sq, p.AllOccupied))
	case King:
		return p.kingMoves(sq, us)
	}
	return nil
}

// PseudoLegalMoves returns the pseudo-legal moves of every piece of the
// side to move.
func (p *Position) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 48)
	for _, sq := range p.Occupied[p.SideToMove].Squares() {
		moves = append(moves, p.PieceMoves(sq)...)
	}
	return moves
}

// LegalMoves returns the legal moves of the side to move: the pseudo-legal
// moves that do not leave the mover's own king attacked. Each candidate is
// checked on a scratch copy; the receiver is never touched.
func (p *Position) LegalMoves() []Move {
	pseudo := p.PseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	us := p.SideToMove
	them := us.Other()

	for _, m := range pseudo {
		next := p.Apply(m)
		ksq := next.Pieces[us][King].LSB()
		if ksq != NoSquare && next.IsSquareAttacked(ksq, them) {
			continue
		}
		legal = append(legal, m)
	}
	return legal
}

// pawnMoves generates pushes, double pushes, captures, en passant and
// promotion expansions for the pawn on sq. Direction and special ranks
// follow the pawn's own color, not the side to move, so the generator
// also serves attack-set queries on either side.
func (p *Position) pawnMoves(sq Square, us Color) []Move {
	moves := make([]Move, 0, 8)

	dir := 8
	startRank, promoRank := 1, 7
	if us == Black {
		dir = -8
		startRank, promoRank = 6, 0
	}

	// Pushes. Square conversion of an off-board step lands outside 0..63,
	// so IsValid doubles as the edge guard.
	to := Square(int(sq) + dir)
	if to.IsValid() && p.IsEmpty(to) {
		moves = appendPawnMove(moves, sq, to, promoRank)

		if sq.Rank() == startRank {
			to2 := Square(int(to) + dir)
			if p.IsEmpty(to2) {
				moves = append(moves, NewMove(sq, to2))
			}
		}
	}

	// Captures on the forward diagonals, en passant included.
	targets := pawnAttacks[us][sq]
	captures := targets & p.Occupied[us.Other()]
	for captures != 0 {
		moves = appendPawnMove(moves, sq, captures.PopLSB(), promoRank)
	}
	if p.EnPassant != NoSquare && targets.IsSet(p.EnPassant) {
		moves = append(moves, NewEnPassant(sq, p.EnPassant))
	}

	return moves
}

// appendPawnMove adds the move, expanded into all four promotion choices
// when it reaches the back rank. A pawn landing there never yields a
// plain move.
func appendPawnMove(moves []Move, from, to Square, promoRank int) []Move {
	if to.Rank() != promoRank {
		return append(moves, NewMove(from, to))
	}
	return append(moves,
		NewPromotion(from, to, Queen),
		NewPromotion(from, to, Rook),
		NewPromotion(from, to, Bishop),
		NewPromotion(from, to, Knight),
	)
}

// offsetMoves turns a precomputed offset-table attack set into moves,
// dropping destinations held by friendly pieces.
func (p *Position) offsetMoves(sq Square, us Color, attacks Bitboard) []Move {
	targets := attacks &^ p.Occupied[us]
	moves := make([]Move, 0, targets.PopCount())
	for targets != 0 {
		moves = append(moves, NewMove(sq, targets.PopLSB()))
	}
	return moves
}

// sliderMoves is offsetMoves for blocker-aware slider attack sets; the
// walk already stopped at the first occupied square, so only the friendly
// filter remains.
func (p *Position) sliderMoves(sq Square, us Color, attacks Bitboard) []Move {
	return p.offsetMoves(sq, us, attacks)
}

// kingMoves generates the eight adjacent steps plus castling.
func (p *Position) kingMoves(sq Square, us Color) []Move {
	moves := p.offsetMoves(sq, us, kingAttacks[sq])
	return append(moves, p.castlingMoves(sq, us)...)
}

// castlingMoves evaluates the castling candidates for the king on sq.
// A candidate needs the rights flag, the rook on its corner, empty squares
// between king and rook, and an unattacked king path (origin, the step,
// and the destination). Whether king or rook have moved before is not
// re-derived here; that history lives entirely in the rights flags.
func (p *Position) castlingMoves(sq Square, us Color) []Move {
	them := us.Other()
	var moves []Move

	if us == White {
		if sq != E1 {
			return nil
		}
		if p.CastlingRights&WhiteKingSideCastle != 0 &&
			p.Pieces[White][Rook].IsSet(H1) &&
			p.AllOccupied&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			moves = append(moves, NewCastling(E1, G1))
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 &&
			p.Pieces[White][Rook].IsSet(A1) &&
			p.AllOccupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			moves = append(moves, NewCastling(E1, C1))
		}
		return moves
	}

	if sq != E8 {
		return nil
	}
	if p.CastlingRights&BlackKingSideCastle != 0 &&
		p.Pieces[Black][Rook].IsSet(H8) &&
		p.AllOccupied&(SquareBB(F8)|SquareBB(G8)) == 0 &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
		moves = append(moves, NewCastling(E8, G8))
	}
	if p.CastlingRights&BlackQueenSideCastle != 0 &&
		p.Pieces[Black][Rook].IsSet(A8) &&
		p.AllOccupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
		moves = append(moves, NewCastling(E8, C8))
	}
	return moves
}
