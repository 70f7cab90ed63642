// Package ai implements the computer opponents: four escalating move
// selection strategies over the rules engine's public queries.
package ai

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tmcgee/chessmate-backend/internal/model"
)

// DefaultDepth is the minimax search depth used when a game does not ask
// for one. Legal-move enumeration dominates node cost, so depth is kept
// shallow by default.
const DefaultDepth = 2

// New returns the picker for a difficulty level from 1 (random) to 4
// (minimax). Depth applies to level 4 only; pass 0 for the default.
func New(level, depth int) (model.MovePicker, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	switch level {
	case 1:
		return NewRandom(rng), nil
	case 2:
		return NewTactical(rng), nil
	case 3:
		return NewHeuristic(rng), nil
	case 4:
		if depth <= 0 {
			depth = DefaultDepth
		}
		return NewMinimax(depth), nil
	}
	return nil, fmt.Errorf("unknown ai level %d", level)
}

// Random picks uniformly over all legal moves.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (p *Random) PickMove(game *model.ChessGame) (model.Move, bool) {
	moves := game.LegalMoves()
	if len(moves) == 0 {
		return model.Move{}, false
	}
	return moves[p.rng.Intn(len(moves))], true
}

// Tactical prefers captures and checking moves, falling back to a
// uniform choice over all legal moves.
type Tactical struct {
	rng *rand.Rand
}

func NewTactical(rng *rand.Rand) *Tactical {
	return &Tactical{rng: rng}
}

func (p *Tactical) PickMove(game *model.ChessGame) (model.Move, bool) {
	moves := game.LegalMoves()
	if len(moves) == 0 {
		return model.Move{}, false
	}

	preferred := []model.Move{}
	for _, move := range moves {
		if game.IsCapture(move) || game.IsCheck(move) {
			preferred = append(preferred, move)
		}
	}
	if len(preferred) > 0 {
		return preferred[p.rng.Intn(len(preferred))], true
	}
	return moves[p.rng.Intn(len(moves))], true
}

// Heuristic works through strict priority tiers: checking moves, then
// captures, then moves whose landing square cannot be recaptured, then
// anything legal. The choice within the first non-empty tier is uniform.
type Heuristic struct {
	rng *rand.Rand
}

func NewHeuristic(rng *rand.Rand) *Heuristic {
	return &Heuristic{rng: rng}
}

func (p *Heuristic) PickMove(game *model.ChessGame) (model.Move, bool) {
	moves := game.LegalMoves()
	if len(moves) == 0 {
		return model.Move{}, false
	}

	tiers := []func(model.Move) bool{
		game.IsCheck,
		game.IsCapture,
		game.IsMoveSafe,
	}
	for _, qualifies := range tiers {
		preferred := []model.Move{}
		for _, move := range moves {
			if qualifies(move) {
				preferred = append(preferred, move)
			}
		}
		if len(preferred) > 0 {
			return preferred[p.rng.Intn(len(preferred))], true
		}
	}
	return moves[p.rng.Intn(len(moves))], true
}
