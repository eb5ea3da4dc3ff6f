package viewer

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/systems/physics"
)

func dial(t *testing.T, s *httptest.Server, room string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(s.URL, "http")
	if room != "" {
		u += "?room=" + room
	}
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newSnapshot(t *testing.T) physics.Snapshot {
	t.Helper()
	w, err := physics.NewWorld()
	require.NoError(t, err)
	_, err = w.CreateEntityBuilder().SetPosition(geom.V(1, 2)).Build()
	require.NoError(t, err)
	_, err = w.Update(1.0 / 60.0)
	require.NoError(t, err)
	return w.Snapshot()
}

func TestFeed_BroadcastToRoom(t *testing.T) {
	feed := New(nil)
	s := httptest.NewServer(feed.Handler())
	defer s.Close()
	defer feed.Close()

	watcher := dial(t, s, "alpha")
	other := dial(t, s, "")
	require.Eventually(t, func() bool {
		return feed.Clients("alpha") == 1 && feed.Clients(DefaultRoom) == 1
	}, time.Second, 10*time.Millisecond)

	snap := newSnapshot(t)
	require.NoError(t, feed.Broadcast("alpha", snap))

	var got Frame
	require.NoError(t, watcher.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, watcher.ReadJSON(&got))
	assert.Equal(t, "alpha", got.Room)
	assert.Equal(t, snap.Step, got.Snapshot.Step)
	require.Len(t, got.Snapshot.Entities, 1)
	assert.Equal(t, snap.Entities[0].ID, got.Snapshot.Entities[0].ID)
	assert.Equal(t, geom.V(1, 2), got.Snapshot.Entities[0].Position)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "default room must not receive alpha frames")
}

func TestFeed_LateJoinerGetsLastFrame(t *testing.T) {
	feed := New(nil)
	s := httptest.NewServer(feed.Handler())
	defer s.Close()

	snap := newSnapshot(t)
	require.NoError(t, feed.Broadcast(DefaultRoom, snap))

	conn := dial(t, s, "")
	var got Frame
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, snap.Step, got.Snapshot.Step)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return feed.Clients(DefaultRoom) == 0 }, time.Second, 10*time.Millisecond)
}

func TestFeed_Close(t *testing.T) {
	feed := New(nil)
	s := httptest.NewServer(feed.Handler())
	defer s.Close()

	conn := dial(t, s, "")
	require.Eventually(t, func() bool { return feed.Clients(DefaultRoom) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, feed.Close())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	assert.ErrorIs(t, feed.Broadcast(DefaultRoom, physics.Snapshot{}), ErrFeedClosed)
	assert.Equal(t, 0, feed.Clients(DefaultRoom))
	require.NoError(t, feed.Close())
}
