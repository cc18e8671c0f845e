package roster

import (
	"errors"
	"net/http"
	"strconv"

	"team-maker/api/apiutil"
	"team-maker/database"
	"team-maker/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PlayerUpsertRequest struct {
	Name   string     `json:"name"`
	Sex    models.Sex `json:"sex"`
	Active *bool      `json:"active"`
}

type PlayerListRequest struct {
	Filters    []*database.FilterData   `json:"filters"`
	Pagination *database.PaginationData `json:"pagination"`
}

type PlayerListResponse struct {
	Metadata *database.PaginatedResponseMetadata `json:"metadata"`
	Data     []*models.PlayerView                `json:"data"`
}

func RegisterPlayerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /players", getActivePlayers)
	mux.HandleFunc("POST /players", createPlayer)
	mux.HandleFunc("POST /players/list", listPlayers)
	mux.HandleFunc("PUT /players/{id}", updatePlayer)
	mux.HandleFunc("DELETE /players/{id}", deletePlayer)
}

func parsePathId(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// getActivePlayers é a lista que alimenta a tela de geração: só quem está ativo
func getActivePlayers(w http.ResponseWriter, r *http.Request) {
	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	var players []*models.Player
	result := tx.Where(&models.Player{Active: true}, "Active").Order("p_name").Find(&players)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("falha ao listar jogadores ativos")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to list players", nil)
		return
	}

	views := make([]*models.PlayerView, 0, len(players))
	for _, player := range players {
		view, err := player.ConvertToView(tx)
		if err != nil {
			apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to list players", nil)
			return
		}
		views = append(views, view)
	}

	apiutil.WriteJSON(w, http.StatusOK, views)
}

func createPlayer(w http.ResponseWriter, r *http.Request) {
	req := &PlayerUpsertRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}

	if req.Name == "" || !req.Sex.Valid() {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "name is required and sex must be M or F", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	player := &models.Player{
		Name:   req.Name,
		Sex:    req.Sex,
		Active: true,
	}
	if req.Active != nil {
		player.Active = *req.Active
	}

	if result := tx.Create(player); result.Error != nil {
		log.Error().Err(result.Error).Msg("falha ao criar jogador")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodePersistenceFailed, "failed to create player", nil)
		return
	}

	view, _ := player.ConvertToView(tx)
	apiutil.WriteJSON(w, http.StatusCreated, view)
}

func listPlayers(w http.ResponseWriter, r *http.Request) {
	req := &PlayerListRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	tx = tx.Model(&models.Player{})
	tx, err = database.PrepareWithFilters(tx, req.Filters, models.Player{}, nil)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, err.Error(), nil)
		return
	}

	response, err := database.GetPaginatedResult[models.PlayerView, PlayerListResponse](r.Context(), tx, req.Pagination, models.Player{}, nil)
	if err != nil {
		log.Error().Err(err).Msg("falha ao paginar jogadores")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to list players", nil)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, response)
}

func updatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathId(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid player id", nil)
		return
	}

	req := &PlayerUpsertRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}

	if req.Name == "" || !req.Sex.Valid() {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "name is required and sex must be M or F", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	player := &models.Player{}
	if result := tx.First(player, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			apiutil.WriteError(w, http.StatusNotFound, apiutil.ErrorCodeUnknownEntity, "player not found", map[string]any{"playerId": id})
			return
		}
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load player", nil)
		return
	}

	player.Name = req.Name
	player.Sex = req.Sex
	if req.Active != nil {
		player.Active = *req.Active
	}

	if result := tx.Select("Name", "Sex", "Active").Updates(player); result.Error != nil {
		log.Error().Err(result.Error).Int64("playerId", id).Msg("falha ao atualizar jogador")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodePersistenceFailed, "failed to update player", nil)
		return
	}

	view, _ := player.ConvertToView(tx)
	apiutil.WriteJSON(w, http.StatusOK, view)
}

// deletePlayer é soft delete; sessões já geradas continuam referenciando o id
func deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathId(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid player id", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	result := tx.Delete(&models.Player{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Int64("playerId", id).Msg("falha ao remover jogador")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodePersistenceFailed, "failed to delete player", nil)
		return
	}
	if result.RowsAffected == 0 {
		apiutil.WriteError(w, http.StatusNotFound, apiutil.ErrorCodeUnknownEntity, "player not found", map[string]any{"playerId": id})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
