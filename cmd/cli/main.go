// Command cli plays a terminal game against one of the engine
// opponents. Moves are entered as square pairs ("e2 e4"), with an
// optional promotion letter ("e7 e8 q"). Type "resign" to give up.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/tmcgee/chessmate-backend/internal/ai"
	"github.com/tmcgee/chessmate-backend/internal/model"
)

var (
	level     = flag.Int("level", 4, "opponent level (1-4)")
	depth     = flag.Int("depth", ai.DefaultDepth, "search depth for level 4")
	playBlack = flag.Bool("black", false, "play the black pieces")
)

func main() {
	flag.Parse()

	picker, err := ai.New(*level, *depth)
	if err != nil {
		log.Fatal(err)
	}

	humanColor := model.White
	if *playBlack {
		humanColor = model.Black
	}

	game := model.NewChessGame()
	reader := bufio.NewReader(os.Stdin)

	for {
		game.ComputeStalemate()
		if game.State().Terminal() {
			break
		}

		if game.Turn() == humanColor {
			fmt.Println(draw(game.Board()))
			if !humanTurn(game, reader, humanColor) {
				break
			}
		} else {
			move, ok := picker.PickMove(game.Clone())
			if !ok {
				break
			}
			playEngineMove(game, move)
			fmt.Printf("engine plays %s\n", move)
		}
	}

	fmt.Println(draw(game.Board()))
	fmt.Println(verdict(game.State()))
}

// humanTurn prompts until a move is accepted or the player resigns.
// Returns false when the game should end.
func humanTurn(game *model.ChessGame, reader *bufio.Reader, humanColor model.Color) bool {
	for {
		fmt.Printf("%s> ", humanColor)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "resign":
			game.Resign()
			return false
		case "quit", "exit":
			return false
		}

		move, promotion, ok := parseMove(fields, humanColor)
		if !ok {
			fmt.Println("enter moves as square pairs, e.g. \"e2 e4\"")
			continue
		}

		var accepted bool
		if game.IsPromotion(move) {
			if promotion == "" {
				promotion = model.Queen
			}
			accepted = game.ExecuteMovePromotion(move, promotion)
		} else {
			accepted = game.ExecuteMove(move)
		}
		if !accepted {
			fmt.Println("illegal move")
			continue
		}
		return true
	}
}

func playEngineMove(game *model.ChessGame, move model.Move) {
	if game.IsPromotion(move) {
		game.ExecuteMovePromotion(move, model.Queen)
		return
	}
	game.ExecuteMove(move)
}

// parseMove maps "<file><rank> <file><rank> [promotion letter]" to a
// Move. Ranks count from white's side, so row = 8 - rank.
func parseMove(fields []string, mover model.Color) (model.Move, model.PieceType, bool) {
	if len(fields) < 2 {
		return model.Move{}, "", false
	}
	from, ok := parseSquare(fields[0])
	if !ok {
		return model.Move{}, "", false
	}
	to, ok := parseSquare(fields[1])
	if !ok {
		return model.Move{}, "", false
	}

	promotion := model.PieceType("")
	if len(fields) > 2 {
		switch fields[2] {
		case "q":
			promotion = model.Queen
		case "r":
			promotion = model.Rook
		case "b":
			promotion = model.Bishop
		case "n":
			promotion = model.Knight
		default:
			return model.Move{}, "", false
		}
	}

	return model.Move{From: from, To: to, Color: mover}, promotion, true
}

func parseSquare(s string) (model.Square, bool) {
	if len(s) != 2 {
		return model.Square{}, false
	}
	col := int(s[0] - 'a')
	rank := int(s[1] - '0')
	if col < 0 || col > 7 || rank < 1 || rank > 8 {
		return model.Square{}, false
	}
	return model.Square{Row: 8 - rank, Col: col}, true
}

var (
	lightSquare = color.New(color.FgBlack, color.BgHiWhite)
	darkSquare  = color.New(color.FgBlack, color.BgHiGreen)
)

// draw renders the board from white's point of view. White pieces print
// as uppercase letters, black pieces as lowercase.
func draw(board *model.Board) string {
	builder := strings.Builder{}
	for row := 0; row < 8; row++ {
		builder.WriteString(fmt.Sprintf(" %d ", 8-row))
		for col := 0; col < 8; col++ {
			letter := byte(' ')
			if piece := board.PieceAt(row, col); piece != nil {
				letter = piece.Type.Letter()
				if piece.Color == model.White {
					letter -= 'a' - 'A'
				}
			}
			cell := fmt.Sprintf(" %c ", letter)
			if (row+col)%2 == 0 {
				builder.WriteString(lightSquare.Sprint(cell))
			} else {
				builder.WriteString(darkSquare.Sprint(cell))
			}
		}
		builder.WriteString("\n")
	}
	builder.WriteString("    a  b  c  d  e  f  g  h")
	return builder.String()
}

func verdict(state model.GameState) string {
	switch state {
	case model.CheckmateForWhite:
		return "checkmate, black wins"
	case model.CheckmateForBlack:
		return "checkmate, white wins"
	case model.Stalemate:
		return "stalemate"
	case model.ResignedWhite:
		return "white resigns"
	case model.ResignedBlack:
		return "black resigns"
	}
	return "game over"
}
