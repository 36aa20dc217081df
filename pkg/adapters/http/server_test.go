package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/mosaic"
	httpAdapter "github.com/aretw0/mosaic/pkg/adapters/http"
	"github.com/aretw0/mosaic/pkg/adapters/memory"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	engine, err := mosaic.New(mosaic.NopPolicy())
	require.NoError(t, err)
	manager := session.NewManager(engine, memory.NewStore())
	return httpAdapter.NewHandler(manager)
}

func postEvent(t *testing.T, handler http.Handler, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/sessions/"+sessionID+"/events", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Healthz(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_EventFlow(t *testing.T) {
	handler := newTestHandler(t)

	// Connect two screens.
	rec := postEvent(t, handler, "demo",
		`{"type":"CONNECT","data":{"id":"a","size":{"width":100,"height":100}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postEvent(t, handler, "demo",
		`{"type":"CONNECT","data":{"id":"b","size":{"width":100,"height":100}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Pair them with coincident swipes.
	rec = postEvent(t, handler, "demo",
		`{"type":"SWIPE","data":{"id":"a","direction":"RIGHT","position":{"x":95,"y":50}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postEvent(t, handler, "demo",
		`{"type":"SWIPE","data":{"id":"b","direction":"LEFT","position":{"x":5,"y":50}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var state domain.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Len(t, state.Clusters, 1, "Swipe pair should merge the two clusters")
	assert.Equal(t, state.Clients["a"].ClusterID, state.Clients["b"].ClusterID)
	assert.Equal(t, float64(100), state.Clients["b"].Transform.X)

	// The snapshot is also served by GET.
	req := httptest.NewRequest(http.MethodGet, "/sessions/demo", nil)
	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, req)
	assert.Equal(t, http.StatusOK, getRec.Code)

	// And the session shows up in the listing.
	req = httptest.NewRequest(http.MethodGet, "/sessions", nil)
	listRec := httptest.NewRecorder()
	handler.ServeHTTP(listRec, req)
	assert.Equal(t, http.StatusOK, listRec.Code)
	assert.Contains(t, listRec.Body.String(), "demo")
}

func TestServer_ErrorMapping(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("Malformed Envelope Is 400", func(t *testing.T) {
		rec := postEvent(t, handler, "demo", `{"type":"CONNECT","data":{"size":{"width":100,"height":100}}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown Event Type Is 400", func(t *testing.T) {
		rec := postEvent(t, handler, "demo", `{"type":"REBALANCE"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid Direction Is 422", func(t *testing.T) {
		rec := postEvent(t, handler, "demo",
			`{"type":"CONNECT","data":{"id":"a","size":{"width":100,"height":100}}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = postEvent(t, handler, "demo",
			`{"type":"SWIPE","data":{"id":"a","direction":"DIAGONAL","position":{"x":0,"y":0}}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("Unhandled Action Is 422", func(t *testing.T) {
		rec := postEvent(t, handler, "demo",
			`{"type":"CLIENT_ACTION","data":{"id":"a","action":"SET_COLOR"}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("Missing Session Is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sessions/nope", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_DeleteSession(t *testing.T) {
	handler := newTestHandler(t)

	rec := postEvent(t, handler, "doomed",
		`{"type":"CONNECT","data":{"id":"a","size":{"width":100,"height":100}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/doomed", nil)
	delRec := httptest.NewRecorder()
	handler.ServeHTTP(delRec, req)
	assert.Equal(t, http.StatusNoContent, delRec.Code)

	req = httptest.NewRequest(http.MethodGet, "/sessions/doomed", nil)
	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, req)
	assert.Equal(t, http.StatusNotFound, getRec.Code)
}

func TestServer_CORSPreflight(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
