package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter int64

func (c fixedCounter) CountQuestions(context.Context) (int64, error) {
	return int64(c), nil
}

func startHub(t *testing.T, counter QuestionCounter) (*Hub, string) {
	t.Helper()
	hub := NewHub(counter)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.RegisterClient(r.Context(), conn)
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialFeed(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubSendsSyncThenEvents(t *testing.T) {
	hub, url := startHub(t, fixedCounter(19))
	conn := dialFeed(t, url)

	sync := readMessage(t, conn)
	assert.Equal(t, EventFeedSync, sync.Type)
	payload := sync.Payload.(map[string]interface{})
	assert.EqualValues(t, 19, payload["total_questions"])
	assert.NotEmpty(t, payload["client_id"])
	assert.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(EventQuestionCreated, map[string]interface{}{"id": 7})

	event := readMessage(t, conn)
	assert.Equal(t, EventQuestionCreated, event.Type)
	assert.EqualValues(t, 7, event.Payload.(map[string]interface{})["id"])
}

func TestHubAnswersPing(t *testing.T) {
	hub, url := startHub(t, nil)
	conn := dialFeed(t, url)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Message{Type: "ping"}))
	assert.Equal(t, EventPong, readMessage(t, conn).Type)
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub, url := startHub(t, nil)
	conn := dialFeed(t, url)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ConnectedClients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubPublishWithoutClients(t *testing.T) {
	hub := NewHub(nil)
	for i := 0; i < 200; i++ {
		hub.Publish(EventQuestionDeleted, i)
	}
	assert.Zero(t, hub.ConnectedClients())
}
