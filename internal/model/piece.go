package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Letter is the single-character type code used for material scoring
// and text rendering.
func (p PieceType) Letter() byte {
	switch p {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	return '?'
}

// Material values in centipawns.
var pieceValues = map[PieceType]int{
	King:   10000,
	Queen:  900,
	Rook:   500,
	Bishop: 330,
	Knight: 320,
	Pawn:   100,
}

func (p PieceType) Value() int {
	return pieceValues[p]
}

type Piece struct {
	Type      PieceType `json:"type"`
	Color     Color     `json:"color"`
	MoveCount int       `json:"moveCount"`
}

// AcceptsDisplacement reports whether the shape of the move is one this
// piece kind can make, independent of board context. Obstruction,
// captures and the special-move conditions are the validator's job.
func (p *Piece) AcceptsDisplacement(move Move) bool {
	dy := move.To.Row - move.From.Row
	dx := move.To.Col - move.From.Col
	ady := abs(dy)
	adx := abs(dx)

	switch p.Type {
	case King:
		// One step any direction, or the two-square castle slide.
		return (adx <= 1 && ady <= 1 && adx+ady > 0) || (ady == 0 && adx == 2)
	case Queen:
		return (ady == adx || ady == 0 || adx == 0) && adx+ady > 0
	case Rook:
		return (ady == 0 || adx == 0) && adx+ady > 0
	case Bishop:
		return ady == adx && ady > 0
	case Knight:
		return (ady == 2 && adx == 1) || (ady == 1 && adx == 2)
	case Pawn:
		forward := -1
		if p.Color == Black {
			forward = 1
		}
		// Single advance or diagonal step, or the initial double advance.
		return (dy == forward && adx <= 1) || (dy == 2*forward && adx == 0)
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
