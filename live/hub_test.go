package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"voyago/globals"
	"voyago/middleware"
	"voyago/mq"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		TripID: "trip1",
	}
	hub.register <- client

	hub.Notify(mq.Event{Kind: "item-created", TripID: "trip1", DayID: "day1", ItemID: "itemA"})

	select {
	case got := <-client.Send:
		var notice refreshNotice
		if err := json.Unmarshal(got, &notice); err != nil {
			t.Fatalf("invalid notice: %v", err)
		}
		if notice.Action != "refresh" || notice.Kind != "item-created" || notice.DayID != "day1" {
			t.Fatalf("unexpected notice: %+v", notice)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for notice")
	}

	hub.unregister <- client
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	inRoom := &Client{Send: make(chan []byte, 10), TripID: "tripA"}
	elsewhere := &Client{Send: make(chan []byte, 10), TripID: "tripB"}
	hub.register <- inRoom
	hub.register <- elsewhere

	hub.Notify(mq.Event{Kind: "day-reordered", TripID: "tripA", DayID: "day2"})

	select {
	case <-inRoom.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for notice")
	}

	select {
	case msg := <-elsewhere.Send:
		t.Fatalf("unrelated trip received %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func signTestToken(t *testing.T) string {
	t.Helper()
	claims := &middleware.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestWebSocketHandlerRequiresToken(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	router := httprouter.New()
	router.GET("/ws/trips/:tripid", WebSocketHandler(hub))
	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := strings.Replace(srv.URL, "http", "ws", 1) + "/ws/trips/t1"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("handshake without a token must fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+signTestToken(t), nil)
	if err != nil {
		t.Fatalf("handshake with a valid token failed: %v", err)
	}
	conn.Close()
}
