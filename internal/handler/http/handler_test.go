package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/internal/utils"
	"github.com/MKhiriev/go-pim-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// fakeSession записывает вызовы и возвращает заданную ошибку.
type fakeSession struct {
	err      error
	slowSync bool
	changes  []models.ChangeRecord
	calls    []string
	commits  []models.ChangeRecord
}

func (f *fakeSession) Connect(context.Context) (bool, error) {
	f.calls = append(f.calls, "connect")
	return f.slowSync, f.err
}

func (f *fakeSession) GetChanges(context.Context) ([]models.ChangeRecord, error) {
	f.calls = append(f.calls, "changes")
	return f.changes, f.err
}

func (f *fakeSession) Commit(_ context.Context, change models.ChangeRecord) (models.ChangeRecord, error) {
	f.calls = append(f.calls, "commit")
	f.commits = append(f.commits, change)
	if f.err != nil {
		return models.ChangeRecord{}, f.err
	}
	if change.ID == "" {
		change.ID = "42"
	}
	change.Fingerprint = "fp"
	return change, nil
}

func (f *fakeSession) SyncDone(context.Context) error {
	f.calls = append(f.calls, "done")
	return f.err
}

func (f *fakeSession) Disconnect(context.Context) error {
	f.calls = append(f.calls, "disconnect")
	return f.err
}

type fakeSessions map[string]service.Session

func (f fakeSessions) Session(collection string) (service.Session, error) {
	s, ok := f[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", service.ErrUnknownCollection, collection)
	}
	return s, nil
}

func (f fakeSessions) Collections() []string { return nil }

func newTestHandler(sessions fakeSessions) *Handler {
	return &Handler{
		sessions: sessions,
		appInfo:  &mockAppInfoService{version: "1.2.3"},
		logger:   logger.Nop(),
	}
}

func serve(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestNewHandler(t *testing.T) {
	svcs := &service.Services{AppInfoService: &mockAppInfoService{version: "v"}}
	log := logger.Nop()

	h := NewHandler(svcs, log)

	require.NotNil(t, h)
	assert.Equal(t, svcs, h.sessions)
	assert.Equal(t, log, h.logger)
}

func TestGetServerVersion(t *testing.T) {
	rr := serve(t, newTestHandler(nil), http.MethodGet, "/api/version", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.2.3", rr.Body.String())
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
}

func TestSessionRoutes_FullCycle(t *testing.T) {
	session := &fakeSession{
		slowSync: true,
		changes:  []models.ChangeRecord{{ID: "n1", Kind: models.ChangeAdded, Payload: []byte("a\n"), Fingerprint: "x"}},
	}
	h := newTestHandler(fakeSessions{"notes": session})

	rr := serve(t, h, http.MethodPost, "/api/collections/notes/connect", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.ConnectResponse{Collection: "notes", SlowSync: true}, decodeBody[models.ConnectResponse](t, rr))

	rr = serve(t, h, http.MethodPost, "/api/collections/notes/changes", "")
	require.Equal(t, http.StatusOK, rr.Code)
	changes := decodeBody[models.ChangesResponse](t, rr)
	assert.Equal(t, 1, changes.Length)
	assert.Equal(t, session.changes, changes.Changes)

	rr = serve(t, h, http.MethodPost, "/api/collections/notes/commit", `{"kind":"added","payload":"U2hvcHBpbmcK"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	committed := decodeBody[models.CommitResponse](t, rr)
	assert.Equal(t, "42", committed.Change.ID)
	assert.Equal(t, []byte("Shopping\n"), session.commits[0].Payload)

	rr = serve(t, h, http.MethodPost, "/api/collections/notes/done", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(t, h, http.MethodPost, "/api/collections/notes/disconnect", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	assert.Equal(t, []string{"connect", "changes", "commit", "done", "disconnect"}, session.calls)
}

func TestSessionRoutes_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"decode", service.ErrDecode, http.StatusBadRequest},
		{"unsupported", service.ErrUnsupportedOperation, http.StatusUnprocessableEntity},
		{"store unavailable", service.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"persistence", service.ErrPersistence, http.StatusInternalServerError},
		{"invalid state", service.ErrInvalidSessionState, http.StatusConflict},
		{"wrapped", fmt.Errorf("commit: %w", service.ErrNotFound), http.StatusNotFound},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(fakeSessions{"notes": &fakeSession{err: tt.err}})

			for _, step := range []string{"connect", "changes", "commit", "done", "disconnect"} {
				rr := serve(t, h, http.MethodPost, "/api/collections/notes/"+step, `{"id":"n1","kind":"deleted"}`)

				assert.Equal(t, tt.wantStatus, rr.Code, step)
				body := decodeBody[utils.ErrorResponse](t, rr)
				assert.Equal(t, tt.err.Error(), body.Error)
			}
		})
	}
}

func TestSessionRoutes_UnknownCollection(t *testing.T) {
	h := newTestHandler(fakeSessions{})

	rr := serve(t, h, http.MethodPost, "/api/collections/tasks/connect", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeBody[utils.ErrorResponse](t, rr).Error, "tasks")
}

func TestCommit_InvalidJSON(t *testing.T) {
	session := &fakeSession{}
	h := newTestHandler(fakeSessions{"notes": session})

	rr := serve(t, h, http.MethodPost, "/api/collections/notes/commit", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, session.calls, "сессия не должна вызываться")
}

func TestInit_WrongMethodAndUnknownRoutes(t *testing.T) {
	h := newTestHandler(fakeSessions{"notes": &fakeSession{}})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/collections/notes/connect"},
		{http.MethodDelete, "/api/collections/notes/commit"},
		{http.MethodPost, "/api/version"},
		{http.MethodPost, "/api/collections/notes/rename"},
		{http.MethodGet, "/unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := serve(t, h, tt.method, tt.path, "")
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestInit_TraceIDHeader(t *testing.T) {
	h := newTestHandler(nil)

	rr := serve(t, h, http.MethodGet, "/api/version", "")
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-1")
	rr = httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	assert.Equal(t, "trace-1", rr.Header().Get(traceIDHeader))
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFromError(ErrInvalidRequestBody))
	assert.Equal(t, http.StatusNotFound, statusFromError(service.ErrUnknownCollection))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(nil))
}

func TestStatusFromError_JoinedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "persistence joined with store failure",
			err:  errors.Join(fmt.Errorf("%w: load", service.ErrPersistence), fmt.Errorf("%w: release", service.ErrStoreUnavailable)),
			want: http.StatusServiceUnavailable,
		},
		{
			name: "store failure joined with persistence",
			err:  errors.Join(fmt.Errorf("%w: release", service.ErrStoreUnavailable), fmt.Errorf("%w: load", service.ErrPersistence)),
			want: http.StatusServiceUnavailable,
		},
		{
			name: "unknown collection wrapped with not found",
			err:  fmt.Errorf("%w: %w", service.ErrNotFound, service.ErrUnknownCollection),
			want: http.StatusNotFound,
		},
		{
			name: "decode joined with session state",
			err:  errors.Join(service.ErrInvalidSessionState, service.ErrDecode),
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// результат не должен зависеть от порядка обхода
			for range 20 {
				assert.Equal(t, tt.want, statusFromError(tt.err))
			}
		})
	}
}
