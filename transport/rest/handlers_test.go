package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tresenlinea/internal/entity"
	"github.com/rocketscienceinc/tresenlinea/internal/repository"
	"github.com/rocketscienceinc/tresenlinea/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := usecase.NewSessionManager(logger, repository.NewSessionRepository(), nil)

	server := httptest.NewServer(NewRouter(NewHandlers(logger, manager)))
	t.Cleanup(server.Close)

	return server
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func createSession(t *testing.T, server *httptest.Server) *entity.Session {
	t.Helper()

	var session entity.Session
	status := doJSON(t, http.MethodPost, server.URL+"/sessions", nil, &session)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, session.ID)

	return &session
}

func move(t *testing.T, server *httptest.Server, sessionID string, cell int) (int, errorResponse, entity.Session) {
	t.Helper()

	var raw json.RawMessage
	status := doJSON(t, http.MethodPost, server.URL+"/sessions/"+sessionID+"/moves", map[string]int{"cell": cell}, &raw)

	var session entity.Session
	var errResp errorResponse
	if status == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &session))
	} else {
		require.NoError(t, json.Unmarshal(raw, &errResp))
	}

	return status, errResp, session
}

func TestHandlers_Ping(t *testing.T) {
	server := newTestServer(t)

	// When: /ping is requested
	resp, err := http.Get(server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Then: it answers pong
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestHandlers_ApplyMove(t *testing.T) {
	t.Run("Win is scored and later moves conflict", func(t *testing.T) {
		// Given: a new session
		server := newTestServer(t)
		session := createSession(t, server)

		// When: X@0, O@3, X@1, O@4, X@2
		var last entity.Session
		for _, cell := range []int{0, 3, 1, 4, 2} {
			status, _, result := move(t, server, session.ID, cell)
			require.Equal(t, http.StatusOK, status)
			last = result
		}

		// Then: X wins with one point
		assert.Equal(t, entity.Win(entity.MarkX), last.State.Outcome)
		assert.Equal(t, entity.Scores{X: 1}, last.Scores)

		// And: another move is a conflict
		status, errResp, _ := move(t, server, session.ID, 5)
		assert.Equal(t, http.StatusConflict, status)
		assert.Contains(t, errResp.Error, "game is already over")
		require.NotNil(t, errResp.Session)
		assert.Equal(t, last.State, errResp.Session.State)
	})

	t.Run("Occupied cell is a conflict", func(t *testing.T) {
		server := newTestServer(t)
		session := createSession(t, server)

		status, _, _ := move(t, server, session.ID, 4)
		require.Equal(t, http.StatusOK, status)

		// When: O plays the same cell
		status, errResp, _ := move(t, server, session.ID, 4)

		// Then: 409 is returned
		assert.Equal(t, http.StatusConflict, status)
		assert.Contains(t, errResp.Error, "cell is already occupied")
	})

	t.Run("Out of range cell is a bad request", func(t *testing.T) {
		server := newTestServer(t)
		session := createSession(t, server)

		// When: cell 9 is played
		status, errResp, _ := move(t, server, session.ID, 9)

		// Then: 400 is returned
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, errResp.Error, "out of range")
	})

	t.Run("Missing cell is a bad request", func(t *testing.T) {
		server := newTestServer(t)
		session := createSession(t, server)

		// When: the body has no cell
		resp, err := http.Post(server.URL+"/sessions/"+session.ID+"/moves", "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then: 400 is returned
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown session is not found", func(t *testing.T) {
		server := newTestServer(t)

		// When: a move is sent to a missing session
		status, _, _ := move(t, server, "missing", 0)

		// Then: 404 is returned
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestHandlers_Reset(t *testing.T) {
	// Given: a session where X won
	server := newTestServer(t)
	session := createSession(t, server)

	for _, cell := range []int{0, 3, 1, 4, 2} {
		status, _, _ := move(t, server, session.ID, cell)
		require.Equal(t, http.StatusOK, status)
	}

	// When: the round is reset
	var afterRound entity.Session
	status := doJSON(t, http.MethodPost, server.URL+"/sessions/"+session.ID+"/round/reset", nil, &afterRound)

	// Then: the board is empty and the score is kept
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.Board{}, afterRound.State.Board)
	assert.Equal(t, entity.Scores{X: 1}, afterRound.Scores)

	var scores entity.Scores
	status = doJSON(t, http.MethodGet, server.URL+"/sessions/"+session.ID+"/scores", nil, &scores)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.Scores{X: 1}, scores)

	// When: the session is reset
	var afterSession entity.Session
	status = doJSON(t, http.MethodPost, server.URL+"/sessions/"+session.ID+"/reset", nil, &afterSession)

	// Then: the scores are zeroed
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.Scores{}, afterSession.Scores)
	assert.Equal(t, entity.MarkX, afterSession.State.Turn)
}

func TestHandlers_GetAndDeleteSession(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server)

	// When: the session is fetched
	var got entity.Session
	status := doJSON(t, http.MethodGet, server.URL+"/sessions/"+session.ID, nil, &got)

	// Then: it matches the created one
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, *session, got)

	// When: the session is deleted
	status = doJSON(t, http.MethodDelete, server.URL+"/sessions/"+session.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	// Then: it is gone
	status = doJSON(t, http.MethodGet, server.URL+"/sessions/"+session.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
