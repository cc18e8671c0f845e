package teams

import (
	"errors"
	"net/http"

	"team-maker/api/apiutil"
	"team-maker/database"
	"team-maker/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func getSession(w http.ResponseWriter, r *http.Request) {
	sessionId := r.PathValue("sessionId")
	if sessionId == "" {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid session id", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	session := &models.GenerationSession{}
	result := tx.Where(&models.GenerationSession{PublicId: sessionId}, "PublicId").First(session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			apiutil.WriteError(w, http.StatusNotFound, apiutil.ErrorCodeUnknownEntity, "session not found", map[string]any{"sessionId": sessionId})
			return
		}
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load session", nil)
		return
	}

	view, err := session.ConvertToDetailView(tx)
	if err != nil {
		log.Error().Err(err).Str("sessionId", sessionId).Msg("falha ao montar a sessão")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load session", nil)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, view)
}

func listSessions(w http.ResponseWriter, r *http.Request) {
	req := &SessionListRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	tx = tx.Model(&models.GenerationSession{})
	tx, err = database.PrepareWithFilters(tx, req.Filters, models.GenerationSession{}, nil)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, err.Error(), nil)
		return
	}

	// mais recentes primeiro, a não ser que o caller mande outra ordenação
	if req.Pagination == nil || len(req.Pagination.SortOptions) == 0 {
		tx = tx.Order("gs_created_at DESC")
	}

	response, err := database.GetPaginatedResult[models.GenerationSessionView, SessionListResponse](r.Context(), tx, req.Pagination, models.GenerationSession{}, nil)
	if err != nil {
		log.Error().Err(err).Msg("falha ao paginar sessões")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to list sessions", nil)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, response)
}
