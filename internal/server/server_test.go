package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexciv/hexciv/internal/game"
)

func dialTestServer(t *testing.T) (*game.Engine, *websocket.Conn) {
	t.Helper()

	engine, err := game.NewEngine(2, 1234, nil)
	require.NoError(t, err)

	srv := New(engine)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return engine, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(msg, &m))
	return m
}

func readSnapshot(t *testing.T, conn *websocket.Conn) Snapshot {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(msg, &snap))
	require.Equal(t, MsgSnapshot, snap.Type)
	return snap
}

func TestServer_GreetsWithSnapshot(t *testing.T) {
	engine, conn := dialTestServer(t)

	snap := readSnapshot(t, conn)

	assert.Equal(t, engine.GameID(), snap.GameID)
	assert.Equal(t, 1, snap.Turn)
	assert.Equal(t, "Running", snap.Phase)
	require.Len(t, snap.Civs, 2)
	assert.NotEmpty(t, snap.Civs[0].Units)
}

func TestServer_EndTurnAdvancesAndBroadcasts(t *testing.T) {
	engine, conn := dialTestServer(t)
	_ = readSnapshot(t, conn)

	require.NoError(t, conn.WriteJSON(Command{Type: CmdEndTurn}))
	snap := readSnapshot(t, conn)

	assert.Equal(t, 1, snap.CurrentCiv)
	assert.Equal(t, engine.CurrentCiv().ID, snap.CurrentCiv)
}

func TestServer_RejectsMalformedAndUnknownCommands(t *testing.T) {
	_, conn := dialTestServer(t)
	_ = readSnapshot(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	m := readMessage(t, conn)
	assert.JSONEq(t, `"error"`, string(m["type"]))

	require.NoError(t, conn.WriteJSON(Command{Type: "teleport"}))
	m = readMessage(t, conn)
	assert.JSONEq(t, `"error"`, string(m["type"]))

	require.NoError(t, conn.WriteJSON(Command{Type: CmdMove, UnitID: 9999}))
	m = readMessage(t, conn)
	assert.JSONEq(t, `"error"`, string(m["type"]))
}

func TestServer_FoundCityCommand(t *testing.T) {
	engine, conn := dialTestServer(t)
	_ = readSnapshot(t, conn)

	settler := engine.CurrentCiv().Units[0]
	require.NoError(t, conn.WriteJSON(Command{Type: CmdFoundCity, UnitID: settler.ID}))

	snap := readSnapshot(t, conn)
	require.NotEmpty(t, snap.Civs[0].Cities)
	assert.Len(t, snap.Civs[0].Cities[0].Tiles, 7)
}
