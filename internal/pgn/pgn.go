// Package pgn extracts starting positions from PGN game records. It reads
// only as far as the movetext marker of each game: the [FEN "..."] tag, when
// present, names the position the game starts from; otherwise the standard
// starting position is assumed. Movetext itself is not interpreted.
package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fastchess/internal/board"
)

const fenTagPrefix = `[FEN "`

// Reader streams the starting position of each game in a PGN source.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps r for game-by-game reading.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// NextPosition advances to the next game and returns its starting position.
// A game is recognized by the "1." that opens its movetext; any [FEN] tag
// seen in the headers before it overrides the standard start. io.EOF is
// returned when the source holds no further games.
func (r *Reader) NextPosition() (*board.Position, error) {
	var fen string

	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, fenTagPrefix) && strings.HasSuffix(line, `"]`) {
			fen = line[len(fenTagPrefix) : len(line)-2]
			continue
		}

		if !strings.HasPrefix(line, "1.") {
			continue
		}

		// Movetext reached: the headers are complete.
		if fen == "" {
			fen = board.StartFEN
		}
		pos, err := board.ParseFEN(fen)
		if err != nil {
			return nil, fmt.Errorf("pgn: bad FEN tag: %w", err)
		}
		return pos, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
