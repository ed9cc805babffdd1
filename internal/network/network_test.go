package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/engine"
	"github.com/PatrikSjolin/hollowheart/internal/events"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/metrics"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

func newTestSession(t *testing.T) (*engine.Session, *character.Character, *events.EventLog) {
	t.Helper()
	el := events.NewEventLog(nil, 100)
	c := character.New("Ada", character.Options{Narrator: el, Notifier: el})
	eng := engine.NewEngine(c, engine.DefaultConfig(), engine.Deps{
		RNG:    random.New(7),
		Logger: logger.Discard(),
	})
	return engine.NewSession(eng), c, el
}

func action(t *testing.T, typ string, payload any) PlayerAction {
	t.Helper()
	a := PlayerAction{Type: typ}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		a.Payload = raw
	}
	return a
}

func TestDispatch(t *testing.T) {
	s, c, _ := newTestSession(t)
	c.ModifyResource(resource.Iron, 10)

	tests := []struct {
		name     string
		action   PlayerAction
		accepted bool
		wantErr  bool
	}{
		{"descend from surface", action(t, "DESCEND", nil), true, false},
		{"climb without rope", action(t, "CLIMB", nil), false, false},
		{"ascend", action(t, "ASCEND", nil), true, false},
		{"ascend twice", action(t, "ASCEND", nil), false, false},
		{"convert iron", action(t, "CONVERT", map[string]any{"resource": "iron", "amount": 4}), true, false},
		{"convert wood", action(t, "CONVERT", map[string]any{"resource": "wood", "amount": 1}), false, false},
		{"upgrade without points", action(t, "UPGRADE", map[string]any{"attribute": "strength"}), false, false},
		{"bad attribute", action(t, "UPGRADE", map[string]any{"attribute": "luck"}), false, true},
		{"bad slot", action(t, "EQUIP", map[string]any{"slot": "hat", "item_id": "x"}), false, true},
		{"unequip empty", action(t, "UNEQUIP", map[string]any{"slot": "weapon"}), false, false},
		{"unknown building", action(t, "BUILD", map[string]any{"building": "Castle"}), false, true},
		{"unknown research", action(t, "RESEARCH", map[string]any{"research": "Alchemy"}), false, false},
		{"use missing item", action(t, "USE", map[string]any{"item_id": "nope"}), false, false},
		{"malformed payload", PlayerAction{Type: "USE", Payload: json.RawMessage(`[1,2]`)}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dispatch(s, tt.action)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.accepted {
				t.Errorf("accepted = %v, want %v", got, tt.accepted)
			}
		})
	}

	if got := c.Resource(resource.Coins); got != 4 {
		t.Errorf("coins after conversion = %d, want 4", got)
	}

	if _, err := Dispatch(s, PlayerAction{Type: "DANCE"}); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("unknown type err = %v", err)
	}
}

func TestHandleLog(t *testing.T) {
	s, _, el := newTestSession(t)
	el.AppendLogLine("first", "")
	el.AppendLogLine("second", "")
	el.AppendLogLine("third", "")
	rh := NewReplayHandler(el, s, logger.Discard())

	rec := httptest.NewRecorder()
	rh.HandleLog(rec, httptest.NewRequest(http.MethodGet, "/api/log?since=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp LogResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.LastSeq != 3 || len(resp.Lines) != 2 || resp.Lines[0].Message != "second" {
		t.Errorf("response = %+v", resp)
	}

	rec = httptest.NewRecorder()
	rh.HandleLog(rec, httptest.NewRequest(http.MethodGet, "/api/log?since=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad since status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	rh.HandleLog(rec, httptest.NewRequest(http.MethodPost, "/api/log", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	rh.HandleLog(rec, httptest.NewRequest(http.MethodGet, "/api/log?since=3", nil))
	if !strings.Contains(rec.Body.String(), `"lines":[]`) {
		t.Errorf("caught-up response should carry an empty list: %s", rec.Body.String())
	}
}

func TestHandleState(t *testing.T) {
	s, _, el := newTestSession(t)
	s.Descend()
	rh := NewReplayHandler(el, s, logger.Discard())

	mux := http.NewServeMux()
	rh.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	var resp StateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Status.Exploring || resp.Status.Depth != 1 || resp.Character.Name != "Ada" {
		t.Errorf("state = %+v", resp.Status)
	}
}

// readMessages reads frames, splitting newline-joined batches, until done
// reports true or the deadline passes.
func readMessages(t *testing.T, conn *websocket.Conn, done func(map[string]any) bool) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		for _, part := range bytes.Split(data, []byte{'\n'}) {
			var msg map[string]any
			if json.Unmarshal(part, &msg) != nil {
				continue
			}
			if done(msg) {
				return
			}
		}
	}
}

func TestHubRoundTrip(t *testing.T) {
	s, _, el := newTestSession(t)
	m := metrics.New()
	hub := NewHub(s, m, logger.Discard(), 16, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	hub.StreamLog(ctx, el, 16)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if err := conn.WriteJSON(PlayerAction{Type: "DESCEND"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var ack, line map[string]any
	readMessages(t, conn, func(msg map[string]any) bool {
		if msg["type"] == "ACK" {
			ack = msg
		}
		if text, _ := msg["message"].(string); strings.Contains(text, "descend to depth 1") {
			line = msg
		}
		return ack != nil && line != nil
	})
	if ack["command"] != "DESCEND" || ack["accepted"] != true {
		t.Errorf("ack = %v", ack)
	}
	if line["kind"] != string(events.KindLine) {
		t.Errorf("line = %v", line)
	}
	if n := atomic.LoadInt64(&m.WSMessagesIn); n != 1 {
		t.Errorf("messages in = %d", n)
	}
}
