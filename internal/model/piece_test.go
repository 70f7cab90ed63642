package model

import "testing"

func mv(fromRow, fromCol, toRow, toCol int, color Color) Move {
	return Move{
		From:  Square{Row: fromRow, Col: fromCol},
		To:    Square{Row: toRow, Col: toCol},
		Color: color,
	}
}

func TestAcceptsDisplacement(t *testing.T) {
	tests := []struct {
		name  string
		piece Piece
		move  Move
		want  bool
	}{
		{"king one step", Piece{Type: King, Color: White}, mv(7, 4, 6, 4, White), true},
		{"king diagonal", Piece{Type: King, Color: White}, mv(7, 4, 6, 5, White), true},
		{"king castle slide", Piece{Type: King, Color: White}, mv(7, 4, 7, 6, White), true},
		{"king two forward", Piece{Type: King, Color: White}, mv(7, 4, 5, 4, White), false},
		{"king zero move", Piece{Type: King, Color: White}, mv(7, 4, 7, 4, White), false},
		{"queen file", Piece{Type: Queen, Color: White}, mv(7, 3, 0, 3, White), true},
		{"queen diagonal", Piece{Type: Queen, Color: White}, mv(7, 3, 3, 7, White), true},
		{"queen knight shape", Piece{Type: Queen, Color: White}, mv(7, 3, 5, 4, White), false},
		{"rook rank", Piece{Type: Rook, Color: Black}, mv(0, 0, 0, 7, Black), true},
		{"rook diagonal", Piece{Type: Rook, Color: Black}, mv(0, 0, 3, 3, Black), false},
		{"bishop diagonal", Piece{Type: Bishop, Color: White}, mv(7, 2, 3, 6, White), true},
		{"bishop straight", Piece{Type: Bishop, Color: White}, mv(7, 2, 4, 2, White), false},
		{"knight jump", Piece{Type: Knight, Color: White}, mv(7, 1, 5, 2, White), true},
		{"knight long", Piece{Type: Knight, Color: White}, mv(7, 1, 4, 1, White), false},
		{"white pawn advance", Piece{Type: Pawn, Color: White}, mv(6, 4, 5, 4, White), true},
		{"white pawn double", Piece{Type: Pawn, Color: White}, mv(6, 4, 4, 4, White), true},
		{"white pawn capture shape", Piece{Type: Pawn, Color: White}, mv(6, 4, 5, 5, White), true},
		{"white pawn backwards", Piece{Type: Pawn, Color: White}, mv(5, 4, 6, 4, White), false},
		{"black pawn advance", Piece{Type: Pawn, Color: Black}, mv(1, 4, 2, 4, Black), true},
		{"black pawn backwards", Piece{Type: Pawn, Color: Black}, mv(2, 4, 1, 4, Black), false},
		{"black pawn double diagonal", Piece{Type: Pawn, Color: Black}, mv(1, 4, 3, 6, Black), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.piece.AcceptsDisplacement(tt.move); got != tt.want {
				t.Errorf("AcceptsDisplacement(%v) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}
}

func TestPieceValues(t *testing.T) {
	want := map[PieceType]int{
		King:   10000,
		Queen:  900,
		Rook:   500,
		Bishop: 330,
		Knight: 320,
		Pawn:   100,
	}
	for pt, value := range want {
		if got := pt.Value(); got != value {
			t.Errorf("%s.Value() = %d, want %d", pt, got, value)
		}
	}
}

func TestPieceTypeLetter(t *testing.T) {
	letters := map[PieceType]byte{
		King: 'k', Queen: 'q', Rook: 'r', Bishop: 'b', Knight: 'n', Pawn: 'p',
	}
	for pt, letter := range letters {
		if got := pt.Letter(); got != letter {
			t.Errorf("%s.Letter() = %c, want %c", pt, got, letter)
		}
	}
}
