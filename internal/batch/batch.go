// Package batch fans move generation out over goroutines. The board core is
// synchronous and shares nothing but immutable tables, so each unit of work
// gets its own position snapshot and the results are merged afterwards.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fastchess/internal/board"
)

// maxWorkers bounds the position-batch fan-out.
const maxWorkers = 8

// Moves generates the legal moves of the side to move with one goroutine
// per occupied origin square. The per-square pseudo-legal sets are disjoint,
// so the slices concatenate without deduplication; ordering follows the
// origin squares ascending, matching the synchronous generator.
func Moves(ctx context.Context, pos *board.Position) ([]board.Move, error) {
	origins := pos.Occupied[pos.SideToMove].Squares()
	perSquare := make([][]board.Move, len(origins))

	g, ctx := errgroup.WithContext(ctx)
	for i, sq := range origins {
		i, sq := i, sq
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var legal []board.Move
			for _, m := range pos.PieceMoves(sq) {
				if pos.IsLegal(m) {
					legal = append(legal, m)
				}
			}
			perSquare[i] = legal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var moves []board.Move
	for _, ms := range perSquare {
		moves = append(moves, ms...)
	}
	return moves, nil
}

// Positions maps each FEN to the legal moves of its side to move. The whole
// batch fails on the first unparsable FEN, identified by its index.
func Positions(ctx context.Context, fens []string) ([][]board.Move, error) {
	results := make([][]board.Move, len(fens))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for i, fen := range fens {
		i, fen := i, fen
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pos, err := board.ParseFEN(fen)
			if err != nil {
				return fmt.Errorf("position %d: %w", i, err)
			}
			results[i] = pos.LegalMoves()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
