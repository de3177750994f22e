package board

// IsLegal reports whether m is a legal move for the side to move: the move
// must be pseudo-legal for the piece on its origin square, and playing it
// on a scratch copy must not leave the mover's own king attacked. The
// scratch application resolves en passant removal and castling rook
// relocation, so those cases are judged on the true resulting position.
// Invalid input (empty origin, wrong color) returns false, never an error.
func (p *Position) IsLegal(m Move) bool {
	piece := p.PieceAt(m.From())
	if piece == NoPiece || piece.Color() != p.SideToMove {
		return false
	}

	if !containsMove(p.PieceMoves(m.From()), m) {
		return false
	}

	next := p.Apply(m)
	ksq := next.Pieces[p.SideToMove][King].LSB()
	if ksq == NoSquare {
		// No king to expose; best-effort on boards that fail ValidateBoard.
		return true
	}
	return !next.IsSquareAttacked(ksq, p.SideToMove.Other())
}

// ValidateBoard reports whether the position satisfies the one structural
// invariant the engine relies on: exactly one king per side. It is a
// sanity predicate over arbitrary positions, not part of move legality.
func (p *Position) ValidateBoard() bool {
	return p.Pieces[White][King].PopCount() == 1 &&
		p.Pieces[Black][King].PopCount() == 1
}

func containsMove(moves []Move, m Move) bool {
	for _, cand := range moves {
		if cand == m {
			return true
		}
	}
	return false
}
