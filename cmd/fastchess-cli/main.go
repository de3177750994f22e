// Package main implements an interactive shell over the move generator.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"fastchess/internal/batch"
	"fastchess/internal/board"
	"fastchess/internal/pgn"
)

const helpText = `commands:
  fen <FEN>     load a position
  pgn <file>    load the first game of a PGN file
  board         print the current position
  moves         list the legal moves of the side to move
  legal <move>  check one UCI move (e2e4, e7e8q)
  apply <move>  play a legal move
  perft <n>     count leaf nodes to depth n
  help          this text
  exit          leave`

func main() {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fastchess> ",
		HistoryFile:     ".fastchess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	pos := board.NewPosition()
	fmt.Println("fastchess shell, type 'help' for commands")

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "exit", "quit", "x":
			return

		case "help":
			fmt.Println(helpText)

		case "fen":
			next, err := board.ParseFEN(arg)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			pos = next
			fmt.Println(pos)

		case "pgn":
			next, err := loadPGN(arg)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			pos = next
			fmt.Println(pos)

		case "board":
			fmt.Println(pos)
			fmt.Println(pos.ToFEN())

		case "moves":
			moves, err := batch.Moves(context.Background(), pos)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			strs := make([]string, len(moves))
			for i, m := range moves {
				strs[i] = m.String()
			}
			fmt.Printf("%d: %s\n", len(moves), strings.Join(strs, " "))

		case "legal":
			m, err := board.ParseMove(arg, pos)
			if err != nil {
				fmt.Println("illegal:", err)
				continue
			}
			if pos.IsLegal(m) {
				fmt.Println("legal")
			} else {
				fmt.Println("illegal")
			}

		case "apply":
			m, err := board.ParseMove(arg, pos)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			if !pos.IsLegal(m) {
				fmt.Println("illegal move")
				continue
			}
			pos = pos.Apply(m)
			fmt.Println(pos)

		case "perft":
			depth, err := strconv.Atoi(arg)
			if err != nil || depth < 1 {
				fmt.Println("usage: perft <depth>")
				continue
			}
			fmt.Println(perft(pos, depth))

		default:
			fmt.Printf("unknown command %q, type 'help'\n", cmd)
		}
	}
}

func loadPGN(path string) (*board.Position, error) {
	if path == "" {
		return nil, fmt.Errorf("usage: pgn <file>")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pgn.NewReader(f).NextPosition()
}

func perft(p *board.Position, depth int) int64 {
	moves := p.LegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		nodes += perft(p.Apply(m), depth-1)
	}
	return nodes
}
