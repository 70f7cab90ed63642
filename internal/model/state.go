package model

// GameState is the running verdict of a game. CheckForWhite means
// white's king is currently attacked, CheckmateForWhite that white has
// been mated, ResignedWhite that white resigned.
type GameState string

const (
	Ongoing           GameState = "ongoing"
	CheckForWhite     GameState = "checkForWhite"
	CheckForBlack     GameState = "checkForBlack"
	CheckmateForWhite GameState = "checkmateForWhite"
	CheckmateForBlack GameState = "checkmateForBlack"
	Stalemate         GameState = "stalemate"
	ResignedWhite     GameState = "resignedWhite"
	ResignedBlack     GameState = "resignedBlack"
)

func CheckFor(color Color) GameState {
	if color == White {
		return CheckForWhite
	}
	return CheckForBlack
}

func CheckmateFor(color Color) GameState {
	if color == White {
		return CheckmateForWhite
	}
	return CheckmateForBlack
}

func ResignedFor(color Color) GameState {
	if color == White {
		return ResignedWhite
	}
	return ResignedBlack
}

// Terminal reports whether the game is over: checkmate, stalemate or
// resignation. Plain check is not terminal.
func (s GameState) Terminal() bool {
	switch s {
	case CheckmateForWhite, CheckmateForBlack, Stalemate, ResignedWhite, ResignedBlack:
		return true
	}
	return false
}
