package roster

import (
	"errors"
	"net/http"

	"team-maker/api/apiutil"
	"team-maker/database"
	"team-maker/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RatingInput struct {
	SkillId int64   `json:"skillId"`
	Rating  float64 `json:"rating"`
}

type RatingUpsertRequest struct {
	PlayerId int64          `json:"playerId"`
	Ratings  []*RatingInput `json:"ratings"`
}

type RatingHistoryListRequest struct {
	PlayerId   int64                    `json:"playerId"`
	Filters    []*database.FilterData   `json:"filters"`
	Pagination *database.PaginationData `json:"pagination"`
}

type RatingHistoryListResponse struct {
	Metadata *database.PaginatedResponseMetadata `json:"metadata"`
	Data     []*models.RatingHistoryItemView     `json:"data"`
}

func RegisterRatingRoutes(mux *http.ServeMux) {
	mux.HandleFunc("PUT /ratings/upsert", upsertRatings)
	mux.HandleFunc("GET /ratings/player/{id}/current", getCurrentRatings)
	mux.HandleFunc("GET /ratings/player/{id}/history", getRatingHistory)
	mux.HandleFunc("POST /ratings/history/list", listRatingHistory)
}

// upsertRatings troca as notas atuais do jogador nas skills enviadas:
// as linhas atuais viram histórico (Current = false) e as novas entram com
// Current = true, tudo na mesma transação com lock nas linhas afetadas
func upsertRatings(w http.ResponseWriter, r *http.Request) {
	req := &RatingUpsertRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}

	if req.PlayerId <= 0 || len(req.Ratings) == 0 {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "playerId and at least one rating are required", nil)
		return
	}

	skillIds := make([]int64, 0, len(req.Ratings))
	seen := map[int64]struct{}{}
	for _, rating := range req.Ratings {
		if rating.Rating < 0 || rating.Rating > 5 {
			apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "ratings must be between 0 and 5", map[string]any{"skillId": rating.SkillId})
			return
		}
		if _, ok := seen[rating.SkillId]; ok {
			apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "duplicated skillId in ratings", map[string]any{"skillId": rating.SkillId})
			return
		}
		seen[rating.SkillId] = struct{}{}
		skillIds = append(skillIds, rating.SkillId)
	}

	db, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	var missingSkillIds []int64
	playerFound := true

	err = db.Transaction(func(tx *gorm.DB) error {
		player := &models.Player{}
		if result := tx.First(player, req.PlayerId); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				playerFound = false
			}
			return result.Error
		}

		var skills []*models.Skill
		if result := tx.Find(&skills, skillIds); result.Error != nil {
			return result.Error
		}
		if len(skills) != len(skillIds) {
			existing := map[int64]struct{}{}
			for _, skill := range skills {
				existing[skill.Id] = struct{}{}
			}
			for _, skillId := range skillIds {
				if _, ok := existing[skillId]; !ok {
					missingSkillIds = append(missingSkillIds, skillId)
				}
			}
			return gorm.ErrRecordNotFound
		}

		var currentRows []*models.SkillRating
		result := tx.Clauses(database.GetLockForUpdateClause(tx.Dialector.Name(), false)).
			Where(&models.SkillRating{PlayerId: req.PlayerId, Current: true}, "PlayerId", "Current").
			Where("sr_skill_id IN ?", skillIds).
			Find(&currentRows)
		if result.Error != nil {
			return result.Error
		}

		if len(currentRows) > 0 {
			result = tx.Model(&models.SkillRating{}).
				Where(&models.SkillRating{PlayerId: req.PlayerId, Current: true}, "PlayerId", "Current").
				Where("sr_skill_id IN ?", skillIds).
				Update("Current", false)
			if result.Error != nil {
				return result.Error
			}
		}

		newRows := make([]*models.SkillRating, 0, len(req.Ratings))
		for _, rating := range req.Ratings {
			newRows = append(newRows, &models.SkillRating{
				PlayerId: req.PlayerId,
				SkillId:  rating.SkillId,
				Rating:   rating.Rating,
				Current:  true,
			})
		}

		return tx.Create(&newRows).Error
	})

	if err != nil {
		if !playerFound {
			apiutil.WriteError(w, http.StatusNotFound, apiutil.ErrorCodeUnknownEntity, "player not found", map[string]any{"playerId": req.PlayerId})
			return
		}
		if len(missingSkillIds) > 0 {
			apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeUnknownEntity, "unknown skills in ratings", map[string]any{"missingSkillIds": missingSkillIds})
			return
		}

		log.Error().Err(err).Int64("playerId", req.PlayerId).Msg("falha ao gravar notas")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodePersistenceFailed, "failed to save ratings", nil)
		return
	}

	writeCurrentRatings(w, db, req.PlayerId)
}

func writeCurrentRatings(w http.ResponseWriter, tx *gorm.DB, playerId int64) {
	var rows []*models.SkillRating
	result := tx.Where(&models.SkillRating{PlayerId: playerId, Current: true}, "PlayerId", "Current").Find(&rows)
	if result.Error != nil {
		log.Error().Err(result.Error).Int64("playerId", playerId).Msg("falha ao ler notas atuais")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load current ratings", nil)
		return
	}

	ratings := make(map[int64]float64, len(rows))
	for _, row := range rows {
		ratings[row.SkillId] = row.Rating
	}

	apiutil.WriteJSON(w, http.StatusOK, ratings)
}

func getCurrentRatings(w http.ResponseWriter, r *http.Request) {
	playerId, err := parsePathId(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid player id", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	writeCurrentRatings(w, tx, playerId)
}

func getRatingHistory(w http.ResponseWriter, r *http.Request) {
	playerId, err := parsePathId(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid player id", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	tx = tx.Model(&models.SkillRating{})
	tx, err = database.Join(tx, models.SkillRating{}, models.Skill{}, "SkillId", "Id", "")
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load rating history", nil)
		return
	}

	tx, err = database.PrepareForViewModel(tx, models.RatingHistoryEntry{})
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load rating history", nil)
		return
	}

	var entries []*models.RatingHistoryEntry
	result := tx.Where("skill_ratings.sr_player_id = ?", playerId).
		Order("skill_ratings.sr_created_at DESC").
		Scan(&entries)
	if result.Error != nil {
		log.Error().Err(result.Error).Int64("playerId", playerId).Msg("falha ao ler histórico de notas")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load rating history", nil)
		return
	}

	views := make([]*models.RatingHistoryItemView, 0, len(entries))
	for _, entry := range entries {
		view, err := entry.ConvertToView(tx)
		if err != nil {
			apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load rating history", nil)
			return
		}
		views = append(views, view)
	}

	apiutil.WriteJSON(w, http.StatusOK, views)
}

// listRatingHistory é a versão paginada/filtrável do histórico, usada pela tela de admin
func listRatingHistory(w http.ResponseWriter, r *http.Request) {
	req := &RatingHistoryListRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	tx = tx.Model(&models.SkillRating{})
	tx, err = database.Join(tx, models.SkillRating{}, models.Skill{}, "SkillId", "Id", "")
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to list rating history", nil)
		return
	}

	if req.PlayerId > 0 {
		tx = tx.Where("skill_ratings.sr_player_id = ?", req.PlayerId)
	}

	tx, err = database.PrepareWithFilters(tx, req.Filters, models.SkillRating{}, nil)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, err.Error(), nil)
		return
	}

	response, err := database.GetPaginatedResultWithViewModel[models.RatingHistoryItemView, RatingHistoryListResponse](r.Context(), tx, req.Pagination, models.SkillRating{}, models.RatingHistoryEntry{}, nil)
	if err != nil {
		log.Error().Err(err).Msg("falha ao paginar histórico de notas")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to list rating history", nil)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, response)
}
