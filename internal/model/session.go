package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/tmcgee/chessmate-backend/internal/ws"
)

// MovePicker chooses a move for a computer-controlled side. Pickers get
// a clone of the game, so they can never mutate the live position.
type MovePicker interface {
	PickMove(game *ChessGame) (Move, bool)
}

// GameConnections holds the websocket connections observing one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// CapturedPieces lists the pieces each side has taken, in capture order.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// Game is one hosted game session: the rules engine plus everything the
// serving layer needs around it. It is the driver from the engine's
// point of view: it alternates turns, submits accepted moves, runs the
// stalemate check and solicits the engine opponent's reply.
type Game struct {
	ID          string
	mu          sync.Mutex
	chess       *ChessGame
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	players     Players
	captured    CapturedPieces
	opponent    MovePicker
	opponentCol Color
}

// Snapshot is the client-facing view of a session.
type Snapshot struct {
	Board          [8][8]*Piece   `json:"board"`
	ToMove         Color          `json:"toMove"`
	State          GameState      `json:"state"`
	IsCheck        bool           `json:"isCheck"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *Move          `json:"lastMove,omitempty"`
	Players        Players        `json:"players"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		chess:       NewChessGame(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(600 * time.Second),
		blackClock:  NewClock(600 * time.Second),
		captured: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
	}
}

// SetOpponent seats a computer opponent on the given color.
func (g *Game) SetOpponent(picker MovePicker, color Color, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.opponent = picker
	g.opponentCol = color
	seat := ClientPlayer{ID: name, Color: color, TimeLeft: 6000}
	if color == White {
		g.players.White = seat
	} else {
		g.players.Black = seat
	}
}

// AddPlayer seats a human on the first free color and returns it.
func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: White, TimeLeft: 6000}
		g.maybeEngageOpponent()
		return White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: Black, TimeLeft: 6000}
		g.maybeEngageOpponent()
		return Black, nil
	}
	return "", errors.New("game is full")
}

// maybeEngageOpponent kicks off the engine's move when both seats are
// filled and it is the engine's turn, e.g. an engine playing white in a
// freshly joined game. Caller holds the lock.
func (g *Game) maybeEngageOpponent() {
	if g.opponent != nil && g.players.White.ID != "" && g.players.Black.ID != "" &&
		g.chess.Turn() == g.opponentCol && !g.chess.State().Terminal() {
		go g.engageOpponent()
	}
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) snapshot() Snapshot {
	snap := Snapshot{
		Board:          g.chess.Board().Grid(),
		ToMove:         g.chess.Turn(),
		State:          g.chess.State(),
		IsCheck:        g.chess.State() == CheckForWhite || g.chess.State() == CheckForBlack,
		MoveHistory:    g.chess.Moves(),
		CapturedPieces: g.captured,
		Players:        g.players,
	}
	if last, ok := g.chess.LastMove(); ok {
		snap.LastMove = &last
	}
	return snap
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return (g.players.White.ID != "" && g.players.White.ID == playerID) ||
		(g.players.Black.ID != "" && g.players.Black.ID == playerID)
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) playerColor(playerID string) (Color, bool) {
	switch playerID {
	case g.players.White.ID:
		return White, g.players.White.ID != ""
	case g.players.Black.ID:
		return Black, g.players.Black.ID != ""
	}
	return "", false
}

// MakeMove submits a move on behalf of a human player. The engine's
// verdict is boolean; every rejection surfaces as the same error.
func (g *Game) MakeMove(playerID string, move Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.chess.State().Terminal() {
		return errors.New("game is over")
	}
	color, ok := g.playerColor(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	if g.chess.Turn() != color {
		return errors.New("not your turn")
	}

	move.Color = color
	if err := g.commitMove(move); err != nil {
		return err
	}

	if g.opponent != nil && g.chess.Turn() == g.opponentCol && !g.chess.State().Terminal() {
		go g.engageOpponent()
	}
	return nil
}

// commitMove executes a move for the side to move, keeping clocks,
// capture lists and the stalemate check in step. Caller holds the lock.
func (g *Game) commitMove(move Move) error {
	mover := g.chess.Turn()

	// Remember what would be captured; only recorded on acceptance.
	var victim *Piece
	if target := g.chess.Board().PieceAt(move.To.Row, move.To.Col); target != nil {
		copied := *target
		victim = &copied
	} else if p := g.chess.Board().PieceAt(move.From.Row, move.From.Col); p != nil &&
		p.Type == Pawn && move.From.Col != move.To.Col {
		if neighbor := g.chess.Board().PieceAt(move.From.Row, move.To.Col); neighbor != nil {
			copied := *neighbor
			victim = &copied
		}
	}

	// The promotion choice only applies to an actual promoting move; a
	// stray choice on any other move is ignored. Engine pickers emit
	// plain moves, so an omitted choice defaults to queen.
	var promotion PieceType
	if g.chess.IsPromotion(move) {
		promotion = move.Promotion
		if promotion == "" {
			promotion = Queen
		}
	}

	var accepted bool
	if promotion != "" {
		accepted = g.chess.ExecuteMovePromotion(move, promotion)
	} else {
		accepted = g.chess.ExecuteMove(move)
	}
	if !accepted {
		return errors.New("illegal move")
	}

	if victim != nil {
		if mover == White {
			g.captured.White = append(g.captured.White, *victim)
		} else {
			g.captured.Black = append(g.captured.Black, *victim)
		}
	}

	if mover == White {
		g.whiteClock.Stop()
		g.blackClock.Start()
	} else {
		g.blackClock.Stop()
		g.whiteClock.Start()
	}
	g.players.White.TimeLeft = int(g.whiteClock.TimeLeft().Milliseconds() / 100)
	g.players.Black.TimeLeft = int(g.blackClock.TimeLeft().Milliseconds() / 100)

	// Driver policy: probe for stalemate after every accepted move.
	g.chess.ComputeStalemate()

	go g.broadcastState()
	return nil
}

// engageOpponent lets the seated engine pick and play its reply.
func (g *Game) engageOpponent() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.opponent == nil || g.chess.State().Terminal() || g.chess.Turn() != g.opponentCol {
		return
	}
	move, ok := g.opponent.PickMove(g.chess.Clone())
	if !ok {
		return
	}
	move.Color = g.opponentCol
	if err := g.commitMove(move); err != nil {
		log.Printf("game %s: engine move %s rejected: %v", g.ID, move, err)
	}
}

// Resign ends the game against the resigning player.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.chess.State().Terminal() {
		return errors.New("game is over")
	}
	color, ok := g.playerColor(playerID)
	if !ok {
		return errors.New("player not in game")
	}

	// Resignation always counts against the resigner, whoever's turn it
	// is. The session stops accepting moves once the state is terminal.
	if g.chess.Turn() != color {
		g.chess.SetTurn(color)
	}
	g.chess.Resign()
	g.whiteClock.Stop()
	g.blackClock.Stop()

	go g.broadcastState()
	return nil
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the existing healthy connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	snap := g.Snapshot()
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
