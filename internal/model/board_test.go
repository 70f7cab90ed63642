package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBoardSetup(t *testing.T) {
	b := NewBoard()

	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, pt := range backRank {
		if p := b.PieceAt(0, col); p == nil || p.Type != pt || p.Color != Black {
			t.Errorf("square (0,%d) = %+v, want black %s", col, p, pt)
		}
		if p := b.PieceAt(7, col); p == nil || p.Type != pt || p.Color != White {
			t.Errorf("square (7,%d) = %+v, want white %s", col, p, pt)
		}
	}
	for col := 0; col < 8; col++ {
		if p := b.PieceAt(1, col); p == nil || p.Type != Pawn || p.Color != Black {
			t.Errorf("square (1,%d) = %+v, want black pawn", col, p)
		}
		if p := b.PieceAt(6, col); p == nil || p.Type != Pawn || p.Color != White {
			t.Errorf("square (6,%d) = %+v, want white pawn", col, p)
		}
	}
	for row := 2; row < 6; row++ {
		for col := 0; col < 8; col++ {
			if p := b.PieceAt(row, col); p != nil {
				t.Errorf("square (%d,%d) = %+v, want empty", row, col, p)
			}
		}
	}
}

func TestRelocateBumpsMoveCount(t *testing.T) {
	b := NewBoard()
	b.Relocate(mv(6, 4, 4, 4, White))

	if p := b.PieceAt(6, 4); p != nil {
		t.Errorf("source square still occupied by %+v", p)
	}
	p := b.PieceAt(4, 4)
	if p == nil || p.Type != Pawn || p.Color != White {
		t.Fatalf("destination square = %+v, want white pawn", p)
	}
	if p.MoveCount != 1 {
		t.Errorf("MoveCount = %d, want 1", p.MoveCount)
	}
}

func TestApplyEnPassantRemovesBystander(t *testing.T) {
	b := NewEmptyBoard()
	b.SetPiece(3, 4, &Piece{Type: Pawn, Color: White, MoveCount: 2})
	b.SetPiece(3, 3, &Piece{Type: Pawn, Color: Black, MoveCount: 1})

	b.ApplyEnPassant(mv(3, 4, 2, 3, White))

	if p := b.PieceAt(2, 3); p == nil || p.Color != White {
		t.Errorf("capturing pawn not on destination: %+v", p)
	}
	if p := b.PieceAt(3, 3); p != nil {
		t.Errorf("captured pawn still on board: %+v", p)
	}
}

func TestApplyPromotionSwapsType(t *testing.T) {
	b := NewEmptyBoard()
	b.SetPiece(1, 0, &Piece{Type: Pawn, Color: White, MoveCount: 5})

	move := mv(1, 0, 0, 0, White)
	b.Relocate(move)
	b.ApplyPromotion(move, Queen)

	p := b.PieceAt(0, 0)
	if p == nil || p.Type != Queen || p.Color != White {
		t.Fatalf("promoted square = %+v, want white queen", p)
	}
	if p.MoveCount != 6 {
		t.Errorf("MoveCount = %d, want 6", p.MoveCount)
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := NewBoard()
	clone := b.Clone()

	if diff := cmp.Diff(b.Grid(), clone.Grid()); diff != "" {
		t.Fatalf("clone differs from original (-want +got):\n%s", diff)
	}

	clone.Relocate(mv(6, 4, 4, 4, White))
	if b.PieceAt(6, 4) == nil {
		t.Error("relocation on clone mutated the original board")
	}
	if b.PieceAt(6, 4).MoveCount != 0 {
		t.Error("clone shares piece pointers with the original")
	}
}
