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

type SkillUpsertRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

type SkillListRequest struct {
	Filters    []*database.FilterData   `json:"filters"`
	Pagination *database.PaginationData `json:"pagination"`
}

type SkillListResponse struct {
	Metadata *database.PaginatedResponseMetadata `json:"metadata"`
	Data     []*models.SkillView                 `json:"data"`
}

func RegisterSkillRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /skills", getActiveSkills)
	mux.HandleFunc("POST /skills", createSkill)
	mux.HandleFunc("POST /skills/list", listSkills)
	mux.HandleFunc("PUT /skills/{id}", updateSkill)
	mux.HandleFunc("DELETE /skills/{id}", deleteSkill)
}

func getActiveSkills(w http.ResponseWriter, r *http.Request) {
	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	var skills []*models.Skill
	result := tx.Where(&models.Skill{Active: true}, "Active").Order("s_name").Find(&skills)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("falha ao listar skills ativas")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to list skills", nil)
		return
	}

	views := make([]*models.SkillView, 0, len(skills))
	for _, skill := range skills {
		view, err := skill.ConvertToView(tx)
		if err != nil {
			apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to list skills", nil)
			return
		}
		views = append(views, view)
	}

	apiutil.WriteJSON(w, http.StatusOK, views)
}

func createSkill(w http.ResponseWriter, r *http.Request) {
	req := &SkillUpsertRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}

	if req.Code == "" || req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "code and name are required", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	var count int64
	if result := tx.Model(&models.Skill{}).Where(&models.Skill{Code: req.Code}, "Code").Count(&count); result.Error != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to create skill", nil)
		return
	}
	if count > 0 {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "skill code already in use", map[string]any{"code": req.Code})
		return
	}

	skill := &models.Skill{
		Code:   req.Code,
		Name:   req.Name,
		Active: true,
	}
	if req.Active != nil {
		skill.Active = *req.Active
	}

	if result := tx.Create(skill); result.Error != nil {
		log.Error().Err(result.Error).Msg("falha ao criar skill")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodePersistenceFailed, "failed to create skill", nil)
		return
	}

	view, _ := skill.ConvertToView(tx)
	apiutil.WriteJSON(w, http.StatusCreated, view)
}

func listSkills(w http.ResponseWriter, r *http.Request) {
	req := &SkillListRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	tx = tx.Model(&models.Skill{})
	tx, err = database.PrepareWithFilters(tx, req.Filters, models.Skill{}, nil)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, err.Error(), nil)
		return
	}

	response, err := database.GetPaginatedResult[models.SkillView, SkillListResponse](r.Context(), tx, req.Pagination, models.Skill{}, nil)
	if err != nil {
		log.Error().Err(err).Msg("falha ao paginar skills")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to list skills", nil)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, response)
}

func updateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathId(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid skill id", nil)
		return
	}

	req := &SkillUpsertRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}

	if req.Code == "" || req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "code and name are required", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	skill := &models.Skill{}
	if result := tx.First(skill, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			apiutil.WriteError(w, http.StatusNotFound, apiutil.ErrorCodeUnknownEntity, "skill not found", map[string]any{"skillId": id})
			return
		}
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load skill", nil)
		return
	}

	skill.Code = req.Code
	skill.Name = req.Name
	if req.Active != nil {
		skill.Active = *req.Active
	}

	if result := tx.Select("Code", "Name", "Active").Updates(skill); result.Error != nil {
		log.Error().Err(result.Error).Int64("skillId", id).Msg("falha ao atualizar skill")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodePersistenceFailed, "failed to update skill", nil)
		return
	}

	view, _ := skill.ConvertToView(tx)
	apiutil.WriteJSON(w, http.StatusOK, view)
}

func deleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathId(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid skill id", nil)
		return
	}

	tx, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	result := tx.Delete(&models.Skill{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Int64("skillId", id).Msg("falha ao remover skill")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodePersistenceFailed, "failed to delete skill", nil)
		return
	}
	if result.RowsAffected == 0 {
		apiutil.WriteError(w, http.StatusNotFound, apiutil.ErrorCodeUnknownEntity, "skill not found", map[string]any{"skillId": id})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
