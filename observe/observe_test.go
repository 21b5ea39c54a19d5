package observe

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/gatemaze/maze"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	grid, err := maze.GenerateRand(7, 7, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	s := New(grid)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func TestHealth(t *testing.T) {
	_, srv := testServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStateCarriesGridAndLatestSnapshot(t *testing.T) {
	s, srv := testServer(t)
	s.Publish(Snapshot{
		SessionID: "abc",
		Role:      "HOST",
		X:         3.5,
		Z:         1,
		Locked:    false,
		Won:       true,
		Tint:      [3]float64{0.4, 0.2, 1},
	})

	resp, err := http.Get(srv.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Width  int     `json:"width"`
		Height int     `json:"height"`
		Goal   [2]int  `json:"goal"`
		Cells  [][]int `json:"cells"`
		Snapshot
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 7, got.Width)
	assert.Equal(t, 7, got.Height)
	assert.Len(t, got.Cells, 7)
	assert.Equal(t, "abc", got.SessionID)
	assert.True(t, got.Won)
	assert.Equal(t, 3.5, got.X)
}

func TestWatchStreamsSnapshots(t *testing.T) {
	s, srv := testServer(t)
	s.Publish(Snapshot{Role: "HOST", X: 1})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/watch"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var snap Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "HOST", snap.Role)
	assert.Equal(t, 1.0, snap.X)
}
