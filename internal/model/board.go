package model

// Board is an 8x8 grid of optional piece occupants. It only knows how to
// store pieces and apply raw relocations; legality lives in ChessGame.
type Board struct {
	squares [8][8]*Piece
}

// NewBoard sets up the standard starting position. White occupies rows 6
// and 7, black rows 0 and 1.
func NewBoard() *Board {
	b := &Board{}
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, pt := range backRank {
		b.squares[0][col] = &Piece{Type: pt, Color: Black}
		b.squares[7][col] = &Piece{Type: pt, Color: White}
	}
	for col := 0; col < 8; col++ {
		b.squares[1][col] = &Piece{Type: Pawn, Color: Black}
		b.squares[6][col] = &Piece{Type: Pawn, Color: White}
	}
	return b
}

// NewEmptyBoard returns a board with no pieces, for tests and custom
// position setup.
func NewEmptyBoard() *Board {
	return &Board{}
}

func (b *Board) PieceAt(row, col int) *Piece {
	return b.squares[row][col]
}

func (b *Board) SetPiece(row, col int, piece *Piece) {
	b.squares[row][col] = piece
}

// Relocate applies a raw relocation: the occupant of the source square
// replaces whatever is on the destination square. The mover's move
// counter is incremented.
func (b *Board) Relocate(move Move) {
	piece := b.squares[move.From.Row][move.From.Col]
	if piece == nil {
		return
	}
	b.squares[move.From.Row][move.From.Col] = nil
	b.squares[move.To.Row][move.To.Col] = piece
	piece.MoveCount++
}

// ApplyEnPassant relocates the capturing pawn and removes the captured
// pawn, which sits beside the source square rather than on the
// destination square.
func (b *Board) ApplyEnPassant(move Move) {
	b.Relocate(move)
	b.squares[move.From.Row][move.To.Col] = nil
}

// ApplyPromotion swaps the piece on the destination square for the
// chosen kind, preserving color and move count.
func (b *Board) ApplyPromotion(move Move, promoted PieceType) {
	piece := b.squares[move.To.Row][move.To.Col]
	if piece == nil {
		return
	}
	piece.Type = promoted
}

// Clone deep-copies the board; the copy shares no pieces with the
// original, so hypothetical moves never leak into a live game.
func (b *Board) Clone() *Board {
	clone := &Board{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.squares[row][col]; p != nil {
				copied := *p
				clone.squares[row][col] = &copied
			}
		}
	}
	return clone
}

// Grid exposes the occupancy for serialization to clients.
func (b *Board) Grid() [8][8]*Piece {
	return b.squares
}

func withinBoard(row, col int) bool {
	return row >= 0 && col >= 0 && row < 8 && col < 8
}
