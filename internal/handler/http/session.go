package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/internal/utils"
	"github.com/MKhiriev/go-pim-sync/models"
	"github.com/go-chi/chi/v5"
)

// session resolves the collection named in the route. It writes the error
// response itself and returns false when there is no such collection.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (string, service.Session, bool) {
	collection := chi.URLParam(r, "collection")
	session, err := h.sessions.Session(collection)
	if err != nil {
		logger.FromRequest(r).Err(err).
			Str("func", "*Handler.session").
			Str("collection", collection).
			Msg("unknown collection")
		h.writeError(w, err)
		return collection, nil, false
	}
	return collection, session, true
}

func (h *Handler) connect(w http.ResponseWriter, r *http.Request) {
	collection, session, ok := h.session(w, r)
	if !ok {
		return
	}

	slowSync, err := session.Connect(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.connect").Str("collection", collection).Msg("connect failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.ConnectResponse{Collection: collection, SlowSync: slowSync}, http.StatusOK)
}

func (h *Handler) getChanges(w http.ResponseWriter, r *http.Request) {
	collection, session, ok := h.session(w, r)
	if !ok {
		return
	}

	changes, err := session.GetChanges(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getChanges").Str("collection", collection).Msg("get changes failed")
		h.writeError(w, err)
		return
	}

	response := models.ChangesResponse{
		Collection: collection,
		Changes:    changes,
		Length:     len(changes),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	collection, session, ok := h.session(w, r)
	if !ok {
		return
	}
	log := logger.FromRequest(r)

	var change models.ChangeRecord
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		log.Err(err).Str("func", "*Handler.commit").Str("collection", collection).Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidRequestBody.Error(), http.StatusBadRequest)
		return
	}

	applied, err := session.Commit(r.Context(), change)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.commit").
			Str("collection", collection).
			Str("id", change.ID).
			Str("kind", string(change.Kind)).
			Msg("commit failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.CommitResponse{Collection: collection, Change: applied}, http.StatusOK)
}

func (h *Handler) syncDone(w http.ResponseWriter, r *http.Request) {
	collection, session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := session.SyncDone(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.syncDone").Str("collection", collection).Msg("sync done failed")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) disconnect(w http.ResponseWriter, r *http.Request) {
	collection, session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := session.Disconnect(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.disconnect").Str("collection", collection).Msg("disconnect failed")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	utils.WriteError(w, err.Error(), statusFromError(err))
}
