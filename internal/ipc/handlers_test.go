package ipc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matjam/zoomview/internal/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, m ManagerInterface, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	NewServer(m).ServeHTTP(rec, req)
	return rec
}

func TestStatusReportsPublishedView(t *testing.T) {
	m := NewManager()
	m.Publish(ViewStatus{
		Image:  "/tmp/gem.png",
		Width:  1000,
		Height: 2000,
		State:  viewer.State{Big: true, ScaleFraction: 1},
		Scale:  10,
	})

	rec := do(t, m, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "/tmp/gem.png", res.View.Image)
	assert.True(t, res.View.State.Big)
	assert.Equal(t, float32(10), res.View.Scale)
	assert.NotZero(t, res.PID)
}

func TestToggleAndStopEnqueue(t *testing.T) {
	m := NewManager()

	assert.Equal(t, http.StatusOK, do(t, m, http.MethodPost, "/toggle", "").Code)
	assert.Equal(t, http.StatusOK, do(t, m, http.MethodPost, "/stop", "").Code)

	assert.Equal(t, Command{Type: CommandToggle}, <-m.Commands())
	assert.Equal(t, Command{Type: CommandStop}, <-m.Commands())
}

func TestFlingCarriesVelocity(t *testing.T) {
	m := NewManager()

	rec := do(t, m, http.MethodPost, "/fling", `{"velocity_x": 1200, "velocity_y": -800.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cmd := <-m.Commands()
	assert.Equal(t, CommandFling, cmd.Type)
	assert.Equal(t, float32(1200), cmd.VelocityX)
	assert.Equal(t, float32(-800.5), cmd.VelocityY)
}

func TestFlingRejectsBadBody(t *testing.T) {
	m := NewManager()

	rec := do(t, m, http.MethodPost, "/fling", `{"velocity_x": "fast"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, m.Commands())
}

func TestQueueFullIsReported(t *testing.T) {
	m := NewManager()
	for m.EnqueueCommand(Command{Type: CommandToggle}) {
	}

	rec := do(t, m, http.MethodPost, "/toggle", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "queue full")
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, NewManager(), http.MethodPost, "/next", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
