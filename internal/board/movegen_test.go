package board

import "testing"

func mustParse(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return pos
}

func TestStartingPositionMoveCount(t *testing.T) {
	pos := NewPosition()

	pseudo := pos.PseudoLegalMoves()
	if len(pseudo) != 20 {
		t.Errorf("pseudo-legal moves = %d, want 20", len(pseudo))
	}
	legal := pos.LegalMoves()
	if len(legal) != 20 {
		t.Errorf("legal moves = %d, want 20", len(legal))
	}
}

func TestPieceMovesEmptySquare(t *testing.T) {
	pos := NewPosition()
	if moves := pos.PieceMoves(E4); moves != nil {
		t.Errorf("PieceMoves on empty square returned %v", moves)
	}
	if moves := pos.PieceMoves(NoSquare); moves != nil {
		t.Errorf("PieceMoves on invalid square returned %v", moves)
	}
}

func TestNoSelfCapture(t *testing.T) {
	pos := NewPosition()
	for _, m := range pos.PseudoLegalMoves() {
		target := pos.PieceAt(m.To())
		if target != NoPiece && target.Color() == White {
			t.Errorf("move %v captures a friendly piece", m)
		}
	}
}

func TestPawnDoublePushBlocked(t *testing.T) {
	// A piece on e3 blocks both the single and double push from e2.
	pos := mustParse(t, "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
	moves := pos.PieceMoves(E2)
	for _, m := range moves {
		if m.To() == E3 || m.To() == E4 {
			t.Errorf("blocked pawn generated push %v", m)
		}
	}

	// A piece on e4 only blocks the double push.
	pos = mustParse(t, "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1")
	moves = pos.PieceMoves(E2)
	if !containsMove(moves, NewMove(E2, E3)) {
		t.Error("single push should survive a blocker on the fourth rank")
	}
	if containsMove(moves, NewMove(E2, E4)) {
		t.Error("double push must not jump over a blocker")
	}
}

func TestPromotionExpansion(t *testing.T) {
	pos := mustParse(t, "k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
	moves := pos.PieceMoves(E7)
	if len(moves) != 4 {
		t.Fatalf("promotion push generated %d moves, want 4", len(moves))
	}
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if !containsMove(moves, NewPromotion(E7, E8, pt)) {
			t.Errorf("missing promotion to %v", pt)
		}
	}
	if containsMove(moves, NewMove(E7, E8)) {
		t.Error("a pawn reaching the back rank must not yield a plain move")
	}
}

func TestPromotionCapture(t *testing.T) {
	// Pawn e7, black rook d8: push promotions plus capture promotions.
	pos := mustParse(t, "3r4/4P3/8/8/8/8/8/k3K3 w - - 0 1")
	moves := pos.PieceMoves(E7)
	if len(moves) != 8 {
		t.Fatalf("generated %d moves, want 8 (push and capture promotions)", len(moves))
	}
	if !containsMove(moves, NewPromotion(E7, D8, Queen)) || !containsMove(moves, NewPromotion(E7, D8, Knight)) {
		t.Error("missing capture promotion to d8")
	}
}

func TestEnPassantGeneration(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")
	moves := pos.PieceMoves(D5)

	ep := NewEnPassant(D5, E6)
	if !containsMove(moves, ep) {
		t.Fatalf("expected en passant d5xe6 in %v", moves)
	}

	// Applying it removes the pawn on e5, not a piece on e6.
	next := pos.Apply(ep)
	if next.PieceAt(E6) != WhitePawn {
		t.Errorf("PieceAt(e6) = %v after en passant, want white pawn", next.PieceAt(E6))
	}
	if next.PieceAt(E5) != NoPiece {
		t.Error("captured pawn on e5 should be gone")
	}
	if next.PieceAt(D5) != NoPiece {
		t.Error("origin square should be empty")
	}
}

func TestEnPassantOnlyFromAdjacentFile(t *testing.T) {
	// The target is set but no white pawn stands beside the black pawn.
	pos := mustParse(t, "4k3/8/8/4p3/8/8/8/4K3 w - e6 0 1")
	for _, m := range pos.PseudoLegalMoves() {
		if m.Flag() == FlagEnPassant {
			t.Errorf("spurious en passant move %v", m)
		}
	}
}

func TestCastlingGeneration(t *testing.T) {
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	moves := pos.PieceMoves(E1)

	if !containsMove(moves, NewCastling(E1, G1)) {
		t.Error("missing white kingside castle")
	}
	if !containsMove(moves, NewCastling(E1, C1)) {
		t.Error("missing white queenside castle")
	}

	// Black to move in the mirrored position.
	pos = mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	moves = pos.PieceMoves(E8)
	if !containsMove(moves, NewCastling(E8, G8)) || !containsMove(moves, NewCastling(E8, C8)) {
		t.Error("missing black castling moves")
	}
}

func TestCastlingRequiresRights(t *testing.T) {
	// Same placement, kingside right withdrawn.
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1")
	moves := pos.PieceMoves(E1)
	if containsMove(moves, NewCastling(E1, G1)) {
		t.Error("kingside castle generated without the right")
	}
	if !containsMove(moves, NewCastling(E1, C1)) {
		t.Error("queenside castle should still be available")
	}
}

func TestCastlingRequiresEmptyPath(t *testing.T) {
	// Bishop on f1 blocks kingside; knight on b1 blocks queenside even
	// though b1 is not on the king's path.
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/RN2KB1R w KQkq - 0 1")
	moves := pos.PieceMoves(E1)
	if containsMove(moves, NewCastling(E1, G1)) {
		t.Error("kingside castle generated through an occupied f1")
	}
	if containsMove(moves, NewCastling(E1, C1)) {
		t.Error("queenside castle generated with b1 occupied")
	}
}

func TestCastlingRequiresSafePath(t *testing.T) {
	// Black rook on f8 attacks f1: kingside is barred, queenside is not.
	pos := mustParse(t, "r4r2/4k3/8/8/8/8/8/R3K2R w KQ - 0 1")
	moves := pos.PieceMoves(E1)
	if containsMove(moves, NewCastling(E1, G1)) {
		t.Error("kingside castle generated through an attacked f1")
	}
	if !containsMove(moves, NewCastling(E1, C1)) {
		t.Error("queenside castle should be unaffected by an attack on f1")
	}

	// A king in check cannot castle either way.
	pos = mustParse(t, "k3r3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	for _, m := range pos.PieceMoves(E1) {
		if m.Flag() == FlagCastling {
			t.Errorf("castling %v generated while in check", m)
		}
	}
}

func TestCastlingRookRelocation(t *testing.T) {
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	next := pos.Apply(NewCastling(E1, G1))
	if next.PieceAt(G1) != WhiteKing || next.PieceAt(F1) != WhiteRook {
		t.Error("kingside castle should leave Kg1 Rf1")
	}
	if next.PieceAt(E1) != NoPiece || next.PieceAt(H1) != NoPiece {
		t.Error("kingside castle should vacate e1 and h1")
	}
	if next.CastlingRights&(WhiteKingSideCastle|WhiteQueenSideCastle) != 0 {
		t.Error("castling should clear both white rights")
	}

	next = pos.Apply(NewCastling(E1, C1))
	if next.PieceAt(C1) != WhiteKing || next.PieceAt(D1) != WhiteRook {
		t.Error("queenside castle should leave Kc1 Rd1")
	}
}

func TestRookMoveClearsRight(t *testing.T) {
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	next := pos.Apply(NewMove(H1, H2))
	if next.CastlingRights&WhiteKingSideCastle != 0 {
		t.Error("moving the h1 rook should clear the white kingside right")
	}
	if next.CastlingRights&WhiteQueenSideCastle == 0 {
		t.Error("the queenside right should survive")
	}

	// Capturing a rook on its home square clears the opponent's right.
	pos = mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	capture := pos.Apply(NewMove(A1, A8))
	if capture.CastlingRights&BlackQueenSideCastle != 0 {
		t.Error("capturing the a8 rook should clear black's queenside right")
	}
}

func TestDoublePushSetsEnPassant(t *testing.T) {
	pos := NewPosition()
	next := pos.Apply(NewMove(E2, E4))
	if next.EnPassant != E3 {
		t.Errorf("EnPassant = %v after e2e4, want e3", next.EnPassant)
	}

	// A single push sets nothing, and the target expires after one ply.
	after := next.Apply(NewMove(E7, E6))
	if after.EnPassant != NoSquare {
		t.Errorf("EnPassant = %v after a quiet reply, want -", after.EnPassant)
	}
}

func TestSliderMovesStopAtBlockers(t *testing.T) {
	// Rook d4 with a friendly pawn on d6 and an enemy pawn on f4.
	pos := mustParse(t, "4k3/8/3P4/8/3R1p2/8/8/4K3 w - - 0 1")
	moves := pos.PieceMoves(D4)

	if containsMove(moves, NewMove(D4, D6)) {
		t.Error("rook must not land on a friendly pawn")
	}
	if !containsMove(moves, NewMove(D4, D5)) {
		t.Error("rook should stop just short of a friendly blocker")
	}
	if !containsMove(moves, NewMove(D4, F4)) {
		t.Error("rook should capture the enemy pawn")
	}
	if containsMove(moves, NewMove(D4, G4)) {
		t.Error("rook must not pass through a capture square")
	}
}
