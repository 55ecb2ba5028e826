package controller

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/api"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"go.uber.org/zap"
)

func newTestController(t *testing.T) (*WebSocketController, *service.GameService, string) {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager(time.Hour, zap.NewNop()))
	gameID, _, err := gs.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	return NewWebSocketController(gs, zap.NewNop()), gs, gameID
}

func message(t *testing.T, typ ws.MessageType, payload string) ws.Message {
	t.Helper()
	msg := ws.Message{Type: typ}
	if payload != "" {
		msg.Payload = json.RawMessage(payload)
	}
	return msg
}

func TestHandleMessage(t *testing.T) {
	const unknownGame = "6f1c2b7e-3d4a-4c5b-9e8f-0a1b2c3d4e5f"

	tests := []struct {
		name     string
		msg      ws.Message
		unknown  bool
		wantCode string
		check    func(t *testing.T, state model.GameState)
	}{
		{
			name: "ClickSelects",
			msg:  ws.Message{Type: ws.MessageTypeClick, Payload: json.RawMessage(`{"row":2,"col":1}`)},
			check: func(t *testing.T, state model.GameState) {
				if state.Selection == nil || *state.Selection != (model.Position{Row: 2, Col: 1}) {
					t.Fatalf("expected (2,1) selected, got %v", state.Selection)
				}
			},
		},
		{
			name: "IllegalClickIsNotAnError",
			msg:  ws.Message{Type: ws.MessageTypeClick, Payload: json.RawMessage(`{"row":5,"col":0}`)},
			check: func(t *testing.T, state model.GameState) {
				if state.Rejection == "" || state.Selection != nil {
					t.Fatalf("expected a rejection and no selection")
				}
			},
		},
		{
			name: "Restart",
			msg:  ws.Message{Type: ws.MessageTypeRestart},
			check: func(t *testing.T, state model.GameState) {
				if state.Turn != model.Red || state.LastMove != nil {
					t.Fatalf("expected a fresh game")
				}
			},
		},
		{
			name:     "UnknownType",
			msg:      ws.Message{Type: "resign"},
			wantCode: api.ErrUnknownMessage,
		},
		{
			name:     "MalformedPayload",
			msg:      ws.Message{Type: ws.MessageTypeClick, Payload: json.RawMessage(`"2,1"`)},
			wantCode: api.ErrInvalidRequest,
		},
		{
			name:     "MissingPayload",
			msg:      ws.Message{Type: ws.MessageTypeClick, Payload: json.RawMessage(`{}`)},
			wantCode: api.ErrInvalidRequest,
		},
		{
			name:     "RowOutOfRange",
			msg:      ws.Message{Type: ws.MessageTypeClick, Payload: json.RawMessage(`{"row":9,"col":1}`)},
			wantCode: api.ErrInvalidRequest,
		},
		{
			name:     "ClickUnknownGame",
			msg:      ws.Message{Type: ws.MessageTypeClick, Payload: json.RawMessage(`{"row":2,"col":1}`)},
			unknown:  true,
			wantCode: api.ErrGameNotFound,
		},
		{
			name:     "RestartUnknownGame",
			msg:      ws.Message{Type: ws.MessageTypeRestart},
			unknown:  true,
			wantCode: api.ErrGameNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wsc, gs, gameID := newTestController(t)
			target := gameID
			if tt.unknown {
				target = unknownGame
			}

			errResp := wsc.handleMessage(target, tt.msg)
			if tt.wantCode != "" {
				if errResp == nil {
					t.Fatalf("expected %s, got no error", tt.wantCode)
				}
				if errResp.Code != tt.wantCode {
					t.Fatalf("code = %q, want %q (%s)", errResp.Code, tt.wantCode, errResp.Error)
				}
				return
			}
			if errResp != nil {
				t.Fatalf("unexpected error reply: %+v", *errResp)
			}

			state, err := gs.GetGameState(gameID)
			if err != nil {
				t.Fatalf("GetGameState: %v", err)
			}
			tt.check(t, state)
		})
	}
}

func TestHandleMessageRestartAfterMove(t *testing.T) {
	wsc, gs, gameID := newTestController(t)

	for _, msg := range []ws.Message{
		message(t, ws.MessageTypeClick, `{"row":2,"col":1}`),
		message(t, ws.MessageTypeClick, `{"row":3,"col":0}`),
	} {
		if errResp := wsc.handleMessage(gameID, msg); errResp != nil {
			t.Fatalf("click: %+v", *errResp)
		}
	}
	if state, _ := gs.GetGameState(gameID); state.Turn != model.Black {
		t.Fatalf("expected black to move after the step")
	}

	if errResp := wsc.handleMessage(gameID, message(t, ws.MessageTypeRestart, "")); errResp != nil {
		t.Fatalf("restart: %+v", *errResp)
	}
	if state, _ := gs.GetGameState(gameID); state.Turn != model.Red || state.LastMove != nil {
		t.Fatalf("restart did not reset the game")
	}
}

type fakeWSConn struct {
	deadline  time.Time
	written   []interface{}
	failWrite bool
}

func (f *fakeWSConn) WriteJSON(v interface{}) error {
	if f.failWrite {
		return errors.New("write: broken pipe")
	}
	f.written = append(f.written, v)
	return nil
}

func (f *fakeWSConn) SetWriteDeadline(t time.Time) error {
	f.deadline = t
	return nil
}

func (f *fakeWSConn) Close() error {
	return nil
}

func TestLockedConnSetsWriteDeadline(t *testing.T) {
	fake := &fakeWSConn{}
	conn := &lockedConn{conn: fake}

	before := time.Now()
	if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeGameState}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if len(fake.written) != 1 {
		t.Fatalf("expected one frame, got %d", len(fake.written))
	}
	if fake.deadline.Before(before.Add(writeWait)) || fake.deadline.After(time.Now().Add(writeWait)) {
		t.Fatalf("deadline %s not writeWait from now", fake.deadline)
	}
}

func TestReplyWritesErrorMessage(t *testing.T) {
	fake := &fakeWSConn{}
	reply(zap.NewNop(), &lockedConn{conn: fake}, &api.ErrorResponse{Error: "nope", Code: api.ErrUnknownMessage})

	if len(fake.written) != 1 {
		t.Fatalf("expected one frame, got %d", len(fake.written))
	}
	msg, ok := fake.written[0].(ws.Message)
	if !ok || msg.Type != ws.MessageTypeError {
		t.Fatalf("expected an error message, got %#v", fake.written[0])
	}
	var body api.ErrorResponse
	if err := json.Unmarshal(msg.Payload, &body); err != nil || body.Code != api.ErrUnknownMessage {
		t.Fatalf("payload = %s (%v)", msg.Payload, err)
	}

	// a failing write is logged, not fatal
	fake.failWrite = true
	reply(zap.NewNop(), &lockedConn{conn: fake}, &api.ErrorResponse{Code: api.ErrInternalError})
}
