package board

import "testing"

func TestIsLegalRejectsWrongColor(t *testing.T) {
	pos := NewPosition()

	if pos.IsLegal(NewMove(E7, E5)) {
		t.Error("black move accepted with white to move")
	}
	if pos.IsLegal(NewMove(E4, E5)) {
		t.Error("move from an empty square accepted")
	}
	if !pos.IsLegal(NewMove(E2, E4)) {
		t.Error("e2e4 should be legal from the starting position")
	}
}

func TestIsLegalRejectsNonPseudoLegal(t *testing.T) {
	pos := NewPosition()

	// Right piece, impossible geometry.
	if pos.IsLegal(NewMove(E2, E5)) {
		t.Error("triple pawn push accepted")
	}
	if pos.IsLegal(NewMove(B1, B3)) {
		t.Error("non-knight step accepted for a knight")
	}
	// A plain move to the promotion rank is never pseudo-legal; only the
	// four promotion encodings are.
	promo := mustParse(t, "k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
	if promo.IsLegal(NewMove(E7, E8)) {
		t.Error("plain move onto the back rank accepted for a pawn")
	}
	if !promo.IsLegal(NewPromotion(E7, E8, Queen)) {
		t.Error("queen promotion should be legal")
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	// Black queen on e2 faces the white king on e1; the king may capture
	// it but may not sidestep while remaining attacked.
	pos := mustParse(t, "4k3/8/8/8/8/8/4q3/4K3 w - - 0 1")

	if !pos.IsLegal(NewMove(E1, E2)) {
		t.Error("capturing the adjacent queen should be legal")
	}
	for _, to := range []Square{D1, F1, D2, F2} {
		if pos.IsLegal(NewMove(E1, to)) {
			t.Errorf("king step to %v accepted while the queen covers it", to)
		}
	}

	legal := pos.LegalMoves()
	if len(legal) != 1 || legal[0] != NewMove(E1, E2) {
		t.Errorf("legal moves = %v, want only e1e2", legal)
	}
}

func TestRookPinAgainstKing(t *testing.T) {
	// White bishop d2 is pinned on the d-file by the rook on d8.
	pos := mustParse(t, "3r3k/8/8/8/8/8/3B4/3K4 w - - 0 1")

	for _, m := range pos.PieceMoves(D2) {
		if pos.IsLegal(m) {
			t.Errorf("pinned bishop move %v accepted", m)
		}
	}
	legal := pos.LegalMoves()
	for _, m := range legal {
		if m.From() == D2 {
			t.Errorf("pinned bishop move %v in legal list", m)
		}
	}
}

func TestEnPassantHorizontalPin(t *testing.T) {
	// Classic trap: after ...e7e5 the capture d4xe5... here, capturing
	// en passant removes both pawns from the fourth rank and exposes the
	// black king on a4 to the rook on h4. The capture must be generated
	// pseudo-legally and rejected by the legality filter.
	pos := mustParse(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")

	ep := NewEnPassant(E4, D3)
	if !containsMove(pos.PieceMoves(E4), ep) {
		t.Fatal("en passant capture should be pseudo-legal")
	}
	if pos.IsLegal(ep) {
		t.Error("en passant accepted despite exposing the king on the rank")
	}
	for _, m := range pos.LegalMoves() {
		if m.Flag() == FlagEnPassant {
			t.Errorf("en passant %v in legal list", m)
		}
	}
}

func TestCheckEvasionOnly(t *testing.T) {
	// White king e1 checked by the rook on e8; knight g1 can block on e2,
	// the king can step off the file, nothing else helps.
	pos := mustParse(t, "4r2k/8/8/8/8/8/8/4K1N1 w - - 0 1")

	if !pos.InCheck() {
		t.Fatal("white should be in check")
	}
	for _, m := range pos.LegalMoves() {
		next := pos.Apply(m)
		ksq := next.KingSquare[White]
		if next.IsSquareAttacked(ksq, Black) {
			t.Errorf("legal move %v leaves the king in check", m)
		}
	}
	if !pos.IsLegal(NewMove(G1, E2)) {
		t.Error("blocking with the knight should be legal")
	}
	if pos.IsLegal(NewMove(G1, F3)) {
		t.Error("a knight move that ignores the check was accepted")
	}
}

func TestApplyLeavesReceiverUntouched(t *testing.T) {
	pos := NewPosition()
	before := pos.ToFEN()

	next := pos.Apply(NewMove(G1, F3))
	if pos.ToFEN() != before {
		t.Error("Apply mutated the receiver")
	}
	if next.ToFEN() == before {
		t.Error("Apply returned an unchanged position")
	}
	if next.SideToMove != Black {
		t.Errorf("SideToMove = %v after a white move, want Black", next.SideToMove)
	}
}

func TestHalfMoveClockAndMoveNumber(t *testing.T) {
	pos := NewPosition()

	n1 := pos.Apply(NewMove(G1, F3))
	if n1.HalfMoveClock != 1 {
		t.Errorf("HalfMoveClock = %d after a knight move, want 1", n1.HalfMoveClock)
	}
	if n1.FullMoveNumber != 1 {
		t.Errorf("FullMoveNumber = %d before black replies, want 1", n1.FullMoveNumber)
	}

	n2 := n1.Apply(NewMove(E7, E5))
	if n2.HalfMoveClock != 0 {
		t.Errorf("HalfMoveClock = %d after a pawn move, want 0", n2.HalfMoveClock)
	}
	if n2.FullMoveNumber != 2 {
		t.Errorf("FullMoveNumber = %d after black's reply, want 2", n2.FullMoveNumber)
	}
}
