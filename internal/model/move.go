package model

import "fmt"

// Square addresses a board cell. Row 0 is black's back rank (rank 8),
// row 7 is white's back rank (rank 1).
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

// Move is an immutable relocation request: who moves what from where to
// where, with an optional promotion choice. Equality is field equality.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Color     Color     `json:"color"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func (m Move) String() string {
	return m.From.Notation() + " " + m.To.Notation()
}
