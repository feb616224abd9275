package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/musclerecovery/internal/telemetry/metrics"
	"github.com/2beens/musclerecovery/internal/telemetry/tracing"
	"github.com/2beens/musclerecovery/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxPageSize = 100

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=sessions_test

type sessionsRepo interface {
	Add(ctx context.Context, s *Session, date time.Time) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	List(ctx context.Context, page, size int) (_ []Session, total int, err error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	repo           sessionsRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo sessionsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.new")
	defer span.End()

	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_content_type")
		return
	}

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("new session, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	date, err := Validate(&session)
	if err != nil {
		log.Debugf("new session rejected: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_session")
		return
	}

	added, err := handler.repo.Add(ctx, &session, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownMuscle):
			pkg.WriteJSONError(w, http.StatusBadRequest, "unknown_muscle")
		case errors.Is(err, ErrDuplicateIndex):
			pkg.WriteJSONError(w, http.StatusConflict, "duplicate_index")
		default:
			log.Errorf("failed to add new session [%s]: %s", session.Date, err)
			pkg.WriteJSONError(w, http.StatusInternalServerError, "session_add_failed")
		}
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterSessionsLogged.Inc()
	}
	log.Debugf("new session added: [%s] %s, %d exercises", added.Date, added.ID, len(added.Exercises))

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "session_add_failed")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	s, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			pkg.WriteJSONError(w, http.StatusNotFound, "session_not_found")
			return
		}
		log.Errorf("failed to get session %s: %s", id, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "session_get_failed")
		return
	}

	sJson, err := json.Marshal(s)
	if err != nil {
		log.Errorf("failed to marshal session: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "session_get_failed")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	vars := mux.Vars(r)

	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 1 {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_page")
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil || size < 1 || size > maxPageSize {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_size")
		return
	}

	log.Tracef("list sessions - page %d size %d", page, size)

	sessions, total, err := handler.repo.List(ctx, page, size)
	if err != nil {
		log.Errorf("list sessions error: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "session_list_failed")
		return
	}
	if sessions == nil {
		sessions = []Session{}
	}

	listJson, err := json.Marshal(ListResponse{
		Sessions: sessions,
		Total:    total,
	})
	if err != nil {
		log.Errorf("marshal sessions error: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "session_list_failed")
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
	defer span.End()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			pkg.WriteJSONError(w, http.StatusNotFound, "session_not_found")
			return
		}
		log.Errorf("failed to delete session %s: %s", id, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "session_delete_failed")
		return
	}

	deleteRespJson, err := json.Marshal(DeleteSessionResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "session_delete_failed")
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
