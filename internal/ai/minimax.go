package ai

import (
	"github.com/tmcgee/chessmate-backend/internal/model"
)

const scoreInfinity = 1000000

// Minimax is the level-4 opponent: fixed-depth minimax with alpha-beta
// pruning. Every explored move is applied to a clone of the whole game,
// never to the live position. Leaves are scored by material from the
// searching side's perspective regardless of whose turn the leaf is;
// the maximize/minimize alternation performs the backward induction.
// Ties resolve to the first move seen, so a fixed position always yields
// the same choice.
type Minimax struct {
	depth int
}

func NewMinimax(depth int) *Minimax {
	return &Minimax{depth: depth}
}

func (p *Minimax) PickMove(game *model.ChessGame) (model.Move, bool) {
	moves := game.LegalMoves()
	if len(moves) == 0 {
		return model.Move{}, false
	}

	color := game.Turn()
	best := moves[0]
	bestScore := -scoreInfinity
	alpha, beta := -scoreInfinity, scoreInfinity

	for _, move := range moves {
		next := game.Clone()
		next.ExecuteMove(move)
		score := p.minimax(next, color, p.depth-1, alpha, beta, false)
		if score > bestScore {
			bestScore = score
			best = move
		}
		if score > alpha {
			alpha = score
		}
		if beta <= alpha {
			break
		}
	}
	return best, true
}

func (p *Minimax) minimax(game *model.ChessGame, color model.Color, depth, alpha, beta int, maximizing bool) int {
	if depth == 0 || game.State().Terminal() {
		return game.EvaluateBoard(color)
	}

	moves := game.LegalMoves()
	if maximizing {
		maxEval := -scoreInfinity
		for _, move := range moves {
			next := game.Clone()
			next.ExecuteMove(move)
			eval := p.minimax(next, color, depth-1, alpha, beta, false)
			if eval > maxEval {
				maxEval = eval
			}
			if eval > alpha {
				alpha = eval
			}
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := scoreInfinity
	for _, move := range moves {
		next := game.Clone()
		next.ExecuteMove(move)
		eval := p.minimax(next, color, depth-1, alpha, beta, true)
		if eval < minEval {
			minEval = eval
		}
		if eval < beta {
			beta = eval
		}
		if beta <= alpha {
			break
		}
	}
	return minEval
}
