package model

// Player identifies a connected human player.
type Player struct {
	ID string
}

// ClientPlayer is the per-seat view sent to clients. TimeLeft is in
// tenths of a second.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Color  `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

// Players holds both seats of a game.
type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// MatchFoundEvent notifies a queued player that a game is ready.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Color  `json:"color"`
}
