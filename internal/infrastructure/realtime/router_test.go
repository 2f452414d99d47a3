package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialPair upgrades one server-side websocket per call and returns the
// attached Connection plus the client end for reading.
func dialPair(t *testing.T, router *Router, userID string) (*Connection, *websocket.Conn) {
	t.Helper()

	connCh := make(chan *Connection, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		conn := NewConnection(userID, ws)
		router.Attach(conn)
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return <-connCh, client
}

func readText(t *testing.T, client *websocket.Conn) string {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func TestBroadcastExcludesSender(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	aliceConn, aliceClient := dialPair(t, router, "alice")
	bobConn, bobClient := dialPair(t, router, "bob")

	router.Join("room-1", aliceConn)
	router.Join("room-1", bobConn)

	delivered := router.Broadcast("room-1", []byte("hello"), "alice")
	assert.Equal(t, 1, delivered)
	assert.Equal(t, "hello", readText(t, bobClient))
	_ = aliceClient
}

func TestNotifyUser(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	_, client := dialPair(t, router, "alice")

	assert.True(t, router.NotifyUser("alice", []byte("ping")))
	assert.Equal(t, "ping", readText(t, client))
	assert.False(t, router.NotifyUser("nobody", []byte("ping")))
}

func TestIsOnlineTracksAttachDetach(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	conn, _ := dialPair(t, router, "alice")
	assert.True(t, router.IsOnline("alice"))

	router.Detach(conn)
	assert.False(t, router.IsOnline("alice"))
}

func TestLeaveStopsDelivery(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	conn, _ := dialPair(t, router, "alice")
	router.Join("room-1", conn)
	require.Equal(t, 1, router.Broadcast("room-1", []byte("a"), ""))

	router.Leave("room-1", conn)
	assert.Equal(t, 0, router.Broadcast("room-1", []byte("b"), ""))
}

func TestSendDuringCloseDoesNotPanic(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	conn, _ := dialPair(t, router, "alice")

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				_ = conn.Send([]byte("payload"))
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		conn.Close(websocket.CloseNormalClosure, "done")
	}()

	close(start)
	wg.Wait()

	assert.Error(t, conn.Send([]byte("after close")))
}

func TestAttachReplacesPreviousSession(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	first, firstClient := dialPair(t, router, "alice")
	second, _ := dialPair(t, router, "alice")

	assert.True(t, router.IsOnline("alice"))
	assert.Error(t, first.Send([]byte("stale")))
	assert.NoError(t, second.Send([]byte("fresh")))

	// The first client should observe its socket closing.
	require.NoError(t, firstClient.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		if _, _, err := firstClient.ReadMessage(); err != nil {
			break
		}
	}
}
