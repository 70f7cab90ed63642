package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/tmcgee/chessmate-backend/internal/model"
)

func e2e4(color model.Color) model.Move {
	return model.Move{
		From:  model.Square{Row: 6, Col: 4},
		To:    model.Square{Row: 4, Col: 4},
		Color: color,
	}
}

func TestCreateGameRejectsDuplicates(t *testing.T) {
	gm := NewGameManager()

	if err := gm.CreateGame("g1", GameOptions{}); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if err := gm.CreateGame("g1", GameOptions{}); err == nil {
		t.Error("duplicate CreateGame succeeded")
	}
}

func TestCreateGameRejectsUnknownEngineLevel(t *testing.T) {
	gm := NewGameManager()

	if err := gm.CreateGame("g1", GameOptions{VsEngine: true, EngineLevel: 9}); err == nil {
		t.Error("CreateGame with engine level 9 succeeded")
	}
}

func TestGetGameStateUnknownGame(t *testing.T) {
	gm := NewGameManager()

	if _, err := gm.GetGameState("missing"); err == nil {
		t.Error("GetGameState for unknown game succeeded")
	}
}

func TestHumanGameMoveValidation(t *testing.T) {
	gm := NewGameManager()
	if err := gm.CreateGame("g1", GameOptions{}); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	whiteColor, err := gm.AddPlayerToGame("g1", "alice")
	if err != nil {
		t.Fatalf("AddPlayerToGame alice: %v", err)
	}
	if whiteColor != model.White {
		t.Fatalf("alice seated as %s, want white", whiteColor)
	}
	blackColor, err := gm.AddPlayerToGame("g1", "bob")
	if err != nil {
		t.Fatalf("AddPlayerToGame bob: %v", err)
	}
	if blackColor != model.Black {
		t.Fatalf("bob seated as %s, want black", blackColor)
	}
	if _, err := gm.AddPlayerToGame("g1", "carol"); err == nil {
		t.Error("third player seated in a full game")
	}

	if err := gm.MakeMove("g1", "bob", e2e4(model.Black)); err == nil {
		t.Error("move out of turn accepted")
	}
	if err := gm.MakeMove("g1", "carol", e2e4(model.White)); err == nil {
		t.Error("move by a player outside the game accepted")
	}

	// Pawn from e2 cannot reach e5.
	bad := model.Move{
		From: model.Square{Row: 6, Col: 4},
		To:   model.Square{Row: 3, Col: 4},
	}
	if err := gm.MakeMove("g1", "alice", bad); err == nil {
		t.Error("illegal move accepted")
	}

	if err := gm.MakeMove("g1", "alice", e2e4(model.White)); err != nil {
		t.Fatalf("MakeMove e2e4: %v", err)
	}
	snap, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if len(snap.MoveHistory) != 1 {
		t.Errorf("history length = %d, want 1", len(snap.MoveHistory))
	}
	if snap.ToMove != model.Black {
		t.Errorf("side to move = %s, want black", snap.ToMove)
	}
}

func TestEngineGameRepliesToMove(t *testing.T) {
	gm := NewGameManager()
	if err := gm.CreateGame("g1", GameOptions{VsEngine: true, EngineLevel: 1}); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	seat, err := gm.AddPlayerToGame("g1", "alice")
	if err != nil {
		t.Fatalf("AddPlayerToGame: %v", err)
	}
	if seat != model.White {
		t.Fatalf("alice seated as %s, want white", seat)
	}

	if err := gm.MakeMove("g1", "alice", e2e4(model.White)); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}

	// The engine replies on its own goroutine; poll for it.
	deadline := time.Now().Add(5 * time.Second)
	for {
		snap, err := gm.GetGameState("g1")
		if err != nil {
			t.Fatalf("GetGameState: %v", err)
		}
		if len(snap.MoveHistory) >= 2 {
			if snap.ToMove != model.White {
				t.Errorf("side to move = %s after engine reply, want white", snap.ToMove)
			}
			if snap.MoveHistory[1].Color != model.Black {
				t.Errorf("engine moved %s, want black", snap.MoveHistory[1].Color)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("engine never replied, history: %v", snap.MoveHistory)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestEnginePlayingWhiteOpens(t *testing.T) {
	gm := NewGameManager()
	opts := GameOptions{VsEngine: true, EngineLevel: 1, EngineColor: model.White}
	if err := gm.CreateGame("g1", opts); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	seat, err := gm.AddPlayerToGame("g1", "alice")
	if err != nil {
		t.Fatalf("AddPlayerToGame: %v", err)
	}
	if seat != model.Black {
		t.Fatalf("alice seated as %s, want black", seat)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		snap, err := gm.GetGameState("g1")
		if err != nil {
			t.Fatalf("GetGameState: %v", err)
		}
		if len(snap.MoveHistory) >= 1 {
			if snap.MoveHistory[0].Color != model.White {
				t.Errorf("opening move by %s, want white", snap.MoveHistory[0].Color)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("engine never opened the game")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestResignEndsGame(t *testing.T) {
	gm := NewGameManager()
	if err := gm.CreateGame("g1", GameOptions{}); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := gm.AddPlayerToGame("g1", "alice"); err != nil {
		t.Fatalf("AddPlayerToGame alice: %v", err)
	}
	if _, err := gm.AddPlayerToGame("g1", "bob"); err != nil {
		t.Fatalf("AddPlayerToGame bob: %v", err)
	}

	// Black resigns on white's turn; it still counts against black.
	if err := gm.Resign("g1", "bob"); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	snap, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if snap.State != model.ResignedBlack {
		t.Errorf("state = %s, want %s", snap.State, model.ResignedBlack)
	}

	if err := gm.MakeMove("g1", "alice", e2e4(model.White)); err == nil {
		t.Error("move accepted after resignation")
	}
	if err := gm.Resign("g1", "alice"); err == nil {
		t.Error("resignation accepted after the game ended")
	}
}

func TestMatchmakingPairsPlayers(t *testing.T) {
	gm := NewGameManager()

	ch1 := make(chan string, 1)
	ch2 := make(chan string, 1)
	if err := gm.RegisterMatchmakingChannel("alice", ch1); err != nil {
		t.Fatalf("RegisterMatchmakingChannel alice: %v", err)
	}
	if err := gm.RegisterMatchmakingChannel("bob", ch2); err != nil {
		t.Fatalf("RegisterMatchmakingChannel bob: %v", err)
	}
	if err := gm.JoinMatchmaking("alice"); err != nil {
		t.Fatalf("JoinMatchmaking alice: %v", err)
	}
	if err := gm.JoinMatchmaking("bob"); err != nil {
		t.Fatalf("JoinMatchmaking bob: %v", err)
	}

	readEvent := func(ch chan string) model.MatchFoundEvent {
		t.Helper()
		select {
		case payload := <-ch:
			var event model.MatchFoundEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				t.Fatalf("unmarshal match event: %v", err)
			}
			return event
		case <-time.After(3 * time.Second):
			t.Fatal("no match event received")
			return model.MatchFoundEvent{}
		}
	}

	event1 := readEvent(ch1)
	event2 := readEvent(ch2)

	if event1.GameID == "" || event1.GameID != event2.GameID {
		t.Fatalf("game IDs %q and %q, want one shared ID", event1.GameID, event2.GameID)
	}
	if event1.Color == event2.Color {
		t.Errorf("both players seated as %s", event1.Color)
	}
	if _, err := gm.GetGame(event1.GameID); err != nil {
		t.Errorf("matched game not registered: %v", err)
	}
}
