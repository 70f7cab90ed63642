package model

import "fmt"

// ChessGame owns one board, the side to move, the running game state and
// the history of applied moves. It is the single authority on legality:
// callers submit moves through ExecuteMove/ExecuteMovePromotion and get a
// boolean verdict, nothing mutates on rejection.
//
// A ChessGame is deeply copyable via Clone; the search engine relies on
// clones sharing no state with the live game.
type ChessGame struct {
	board *Board
	turn  Color
	state GameState
	moves []Move
}

func NewChessGame() *ChessGame {
	return &ChessGame{
		board: NewBoard(),
		turn:  White,
		state: Ongoing,
		moves: make([]Move, 0),
	}
}

// NewChessGameFromBoard builds a game over a prepared position, used by
// tests and custom setups.
func NewChessGameFromBoard(board *Board, turn Color) *ChessGame {
	return &ChessGame{
		board: board,
		turn:  turn,
		state: Ongoing,
		moves: make([]Move, 0),
	}
}

// Start resets the verdict and clears the move history.
func (g *ChessGame) Start() {
	g.state = Ongoing
	g.moves = g.moves[:0]
}

func (g *ChessGame) Turn() Color         { return g.turn }
func (g *ChessGame) State() GameState    { return g.state }
func (g *ChessGame) Board() *Board       { return g.board }
func (g *ChessGame) SetTurn(color Color) { g.turn = color }

func (g *ChessGame) Moves() []Move {
	moves := make([]Move, len(g.moves))
	copy(moves, g.moves)
	return moves
}

func (g *ChessGame) LastMove() (Move, bool) {
	if len(g.moves) == 0 {
		return Move{}, false
	}
	return g.moves[len(g.moves)-1], true
}

func (g *ChessGame) Clone() *ChessGame {
	moves := make([]Move, len(g.moves))
	copy(moves, g.moves)
	return &ChessGame{
		board: g.board.Clone(),
		turn:  g.turn,
		state: g.state,
		moves: moves,
	}
}

// IsValidMove checks shape, ownership and obstruction legality of a move
// on the given board. It does not test whether the mover's own king is
// left safe; ExecuteMove applies that second gate before committing.
func (g *ChessGame) IsValidMove(color Color, move Move, board *Board) bool {
	if !withinBoard(move.From.Row, move.From.Col) || !withinBoard(move.To.Row, move.To.Col) {
		return false
	}

	piece := board.PieceAt(move.From.Row, move.From.Col)
	if piece == nil || !piece.AcceptsDisplacement(move) || piece.Color != color {
		return false
	}

	// No self-capture; this also rejects zero displacement.
	target := board.PieceAt(move.To.Row, move.To.Col)
	if target != nil && target.Color == piece.Color {
		return false
	}

	dy := abs(move.To.Row - move.From.Row)
	dx := abs(move.To.Col - move.From.Col)

	// Sliding pieces, and pawn advances, may not pass through occupied
	// squares. Knights jump.
	switch piece.Type {
	case Bishop, Rook, Queen, Pawn:
		stepRow := sign(move.To.Row - move.From.Row)
		stepCol := sign(move.To.Col - move.From.Col)
		row, col := move.From.Row+stepRow, move.From.Col+stepCol
		for row != move.To.Row || col != move.To.Col {
			if board.PieceAt(row, col) != nil {
				return false
			}
			row += stepRow
			col += stepCol
		}
		// Pawns cannot capture straight ahead.
		if piece.Type == Pawn && dx == 0 && target != nil {
			return false
		}
	}

	if piece.Type == Pawn {
		// The double advance is only available on the pawn's first move.
		if dy > 1 && piece.MoveCount > 0 {
			return false
		}
		// A diagonal step onto an empty square is only legal as en
		// passant: the square beside the pawn must hold an opposing pawn
		// whose most recent move was a double advance landing there.
		if dy > 0 && dx > 0 && target == nil {
			neighborCol := move.From.Col + sign(move.To.Col-move.From.Col)
			if withinBoard(move.From.Row, neighborCol) {
				neighbor := board.PieceAt(move.From.Row, neighborCol)
				if neighbor != nil && neighbor.Type == Pawn && neighbor.Color != piece.Color && len(g.moves) > 0 {
					last := g.moves[len(g.moves)-1]
					if last.To.Row == move.From.Row && last.To.Col == neighborCol && abs(last.To.Row-last.From.Row) == 2 {
						return true
					}
				}
			}
			return false
		}
	}

	// A two-square king move declares castling intent: the corner rook
	// for that color and direction must exist, neither piece may have
	// moved, and the squares between them must be empty. Safety of the
	// traversed squares is checked at execution time.
	if piece.Type == King && dx == 2 {
		rookRow := 0
		if color == White {
			rookRow = 7
		}
		rookCol := 0
		if move.To.Col > move.From.Col {
			rookCol = 7
		}
		rook := board.PieceAt(rookRow, rookCol)
		if rook == nil || rook.Type != Rook {
			return false
		}
		if piece.MoveCount > 0 || rook.MoveCount > 0 {
			return false
		}
		step := sign(rookCol - move.From.Col)
		for col := move.From.Col + step; col != rookCol; col += step {
			if board.PieceAt(move.From.Row, col) != nil {
				return false
			}
		}
	}

	return true
}

// ExecuteMove validates and applies a move for the side to move. On
// acceptance the board, history, game state and turn are updated; on
// rejection nothing changes and false is returned.
func (g *ChessGame) ExecuteMove(move Move) bool {
	if !g.applyMove(move) {
		return false
	}
	g.computeState(g.turn.Opposite())
	g.turn = g.turn.Opposite()
	return true
}

// ExecuteMovePromotion is ExecuteMove for a promoting pawn: after the
// relocation lands, the pawn is swapped for the chosen piece kind.
func (g *ChessGame) ExecuteMovePromotion(move Move, promoted PieceType) bool {
	switch promoted {
	case Queen, Rook, Bishop, Knight:
	default:
		return false
	}
	if !g.applyMove(move) {
		return false
	}
	g.board.ApplyPromotion(move, promoted)
	g.computeState(g.turn.Opposite())
	g.turn = g.turn.Opposite()
	return true
}

// applyMove runs the full legality gate and mutates the live board and
// history. The self-check test always runs on a throwaway clone first,
// so a rejected move leaves the live game untouched.
func (g *ChessGame) applyMove(move Move) bool {
	if !g.IsValidMove(g.turn, move, g.board) {
		return false
	}

	piece := g.board.PieceAt(move.From.Row, move.From.Col)
	target := g.board.PieceAt(move.To.Row, move.To.Col)

	dy := abs(move.To.Row - move.From.Row)
	dx := abs(move.To.Col - move.From.Col)

	switch {
	case piece.Type == Pawn && dy > 0 && dx > 0 && target == nil:
		// En passant.
		sim := g.board.Clone()
		sim.Relocate(move)
		if g.kingInCheck(g.turn, sim) {
			return false
		}
		g.board.ApplyEnPassant(move)

	case piece.Type == King && dx == 2:
		// Castling: the king may not castle out of, through, or into
		// check. All three positions are probed on a clone before the
		// live board is touched.
		step := sign(move.To.Col - move.From.Col)
		sim := g.board.Clone()
		if g.kingInCheck(g.turn, sim) {
			return false
		}
		intermediate := Move{
			From:  move.From,
			To:    Square{Row: move.From.Row, Col: move.From.Col + step},
			Color: move.Color,
		}
		sim.Relocate(intermediate)
		if g.kingInCheck(g.turn, sim) {
			return false
		}
		final := Move{
			From:  intermediate.To,
			To:    Square{Row: move.From.Row, Col: move.From.Col + 2*step},
			Color: move.Color,
		}
		sim.Relocate(final)
		if g.kingInCheck(g.turn, sim) {
			return false
		}

		rookRow := 0
		if g.turn == White {
			rookRow = 7
		}
		rookCol := 0
		if step > 0 {
			rookCol = 7
		}
		rookMove := Move{
			From:  Square{Row: rookRow, Col: rookCol},
			To:    Square{Row: rookRow, Col: move.From.Col + step},
			Color: move.Color,
		}
		g.board.Relocate(move)
		g.board.Relocate(rookMove)

	default:
		sim := g.board.Clone()
		sim.Relocate(move)
		if g.kingInCheck(g.turn, sim) {
			return false
		}
		g.board.Relocate(move)
	}

	g.moves = append(g.moves, move)

	// The mover has escaped check.
	if g.state == CheckFor(g.turn) {
		g.state = Ongoing
	}
	return true
}

// computeState derives check and checkmate for the given color, the side
// about to move. Checkmate is declared when every pseudo-legal reply
// still leaves the king attacked.
func (g *ChessGame) computeState(color Color) {
	if !g.kingInCheck(color, g.board) {
		return
	}
	g.state = CheckFor(color)

	for _, reply := range g.pseudoLegalMoves(color, g.board) {
		sim := g.board.Clone()
		sim.Relocate(reply)
		if !g.kingInCheck(color, sim) {
			return
		}
	}
	g.state = CheckmateFor(color)
}

// ComputeStalemate declares stalemate when the side to move is not in
// check and has no legal move. The engine never calls this itself; the
// driver invokes it when it wants stalemate detection.
func (g *ChessGame) ComputeStalemate() {
	if g.state.Terminal() || g.state == CheckFor(g.turn) {
		return
	}
	if len(g.LegalMoves()) == 0 {
		g.state = Stalemate
	}
}

// Resign ends the game against the side to move.
func (g *ChessGame) Resign() {
	g.state = ResignedFor(g.turn)
}

// LegalMoves enumerates the fully check-filtered moves for the side to
// move. This is the most expensive query in the engine: every
// (source, destination) pair on the board is considered.
func (g *ChessGame) LegalMoves() []Move {
	return g.LegalMovesFor(g.turn)
}

func (g *ChessGame) LegalMovesFor(color Color) []Move {
	pseudo := g.pseudoLegalMoves(color, g.board)
	legal := make([]Move, 0, len(pseudo))

	for _, move := range pseudo {
		piece := g.board.PieceAt(move.From.Row, move.From.Col)
		dx := abs(move.To.Col - move.From.Col)

		if piece.Type == King && dx == 2 {
			// Castling is filtered with the same three-position probe
			// ExecuteMove uses.
			if g.kingInCheck(color, g.board) {
				continue
			}
			step := sign(move.To.Col - move.From.Col)
			sim := g.board.Clone()
			intermediate := Move{
				From:  move.From,
				To:    Square{Row: move.From.Row, Col: move.From.Col + step},
				Color: move.Color,
			}
			sim.Relocate(intermediate)
			if g.kingInCheck(color, sim) {
				continue
			}
			final := Move{
				From:  intermediate.To,
				To:    Square{Row: move.From.Row, Col: move.From.Col + 2*step},
				Color: move.Color,
			}
			sim.Relocate(final)
			if g.kingInCheck(color, sim) {
				continue
			}
		} else {
			sim := g.board.Clone()
			sim.Relocate(move)
			if g.kingInCheck(color, sim) {
				continue
			}
		}

		legal = append(legal, move)
	}
	return legal
}

// pseudoLegalMoves walks the fixed 4096-candidate space in row-major
// order, keeping validator-accepted moves. Enumeration order is
// deterministic, which the search relies on for tie-breaking.
func (g *ChessGame) pseudoLegalMoves(color Color, board *Board) []Move {
	moves := []Move{}
	for fromRow := 0; fromRow < 8; fromRow++ {
		for fromCol := 0; fromCol < 8; fromCol++ {
			for toRow := 0; toRow < 8; toRow++ {
				for toCol := 0; toCol < 8; toCol++ {
					move := Move{
						From:  Square{Row: fromRow, Col: fromCol},
						To:    Square{Row: toRow, Col: toCol},
						Color: color,
					}
					if g.IsValidMove(color, move, board) {
						moves = append(moves, move)
					}
				}
			}
		}
	}
	return moves
}

// KingInCheck reports whether the given color's king is attacked on the
// live board.
func (g *ChessGame) KingInCheck(color Color) bool {
	return g.kingInCheck(color, g.board)
}

func (g *ChessGame) kingInCheck(color Color, board *Board) bool {
	king := findKing(color, board)
	for _, move := range g.pseudoLegalMoves(color.Opposite(), board) {
		if move.To == king {
			return true
		}
	}
	return false
}

// findKing locates the king of the given color. Both kings are always on
// the board (the engine never lets one be captured), so a missing king
// is a broken invariant, not a recoverable condition.
func findKing(color Color, board *Board) Square {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := board.PieceAt(row, col)
			if piece != nil && piece.Type == King && piece.Color == color {
				return Square{Row: row, Col: col}
			}
		}
	}
	panic(fmt.Sprintf("chess: no %s king on board", color))
}

// IsCapture reports whether the move's destination square is occupied.
func (g *ChessGame) IsCapture(move Move) bool {
	return g.board.PieceAt(move.To.Row, move.To.Col) != nil
}

// IsCheck reports whether applying the move would put the opponent's
// king under attack.
func (g *ChessGame) IsCheck(move Move) bool {
	sim := g.board.Clone()
	sim.Relocate(move)
	return g.kingInCheck(move.Color.Opposite(), sim)
}

// IsMoveSafe reports whether the moved piece could be recaptured on its
// destination square by any pseudo-legal opponent reply. A one-ply
// hanging-piece probe, not a full exchange evaluation.
func (g *ChessGame) IsMoveSafe(move Move) bool {
	sim := g.board.Clone()
	sim.Relocate(move)
	for _, reply := range g.pseudoLegalMoves(move.Color.Opposite(), sim) {
		if reply.To == move.To {
			return false
		}
	}
	return true
}

// IsPromotion reports whether the move is a validator-legal pawn move
// onto a back rank for the side to move.
func (g *ChessGame) IsPromotion(move Move) bool {
	if !withinBoard(move.From.Row, move.From.Col) || !withinBoard(move.To.Row, move.To.Col) {
		return false
	}
	piece := g.board.PieceAt(move.From.Row, move.From.Col)
	if piece == nil || !piece.AcceptsDisplacement(move) || piece.Color != g.turn {
		return false
	}
	target := g.board.PieceAt(move.To.Row, move.To.Col)
	if target != nil && target.Color == piece.Color {
		return false
	}
	return piece.Type == Pawn && (move.To.Row == 0 || move.To.Row == 7)
}

// EvaluateBoard sums material from the given color's perspective: own
// pieces count positive, opposing pieces negative.
func (g *ChessGame) EvaluateBoard(color Color) int {
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := g.board.PieceAt(row, col)
			if piece == nil {
				continue
			}
			if piece.Color == color {
				score += piece.Type.Value()
			} else {
				score -= piece.Type.Value()
			}
		}
	}
	return score
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
