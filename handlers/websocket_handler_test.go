package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/gorilla/websocket"
)

func TestServeLiveReceivesEvents(t *testing.T) {
	hub := brackets.NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(NewWebSocketHandler(hub, nil).ServeLive))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount(brackets.LiveRoom) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Publish(brackets.LiveRoom, brackets.EventMatchReported, map[string]int{"winner_id": 1})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var msg brackets.WebSocketMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if msg.Type != brackets.EventMatchReported || msg.RoomID != brackets.LiveRoom {
		t.Errorf("message = %+v", msg)
	}
}
