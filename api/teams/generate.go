package teams

import (
	"errors"
	"net/http"
	"time"

	"team-maker/api/apiutil"
	teamGeneration "team-maker/api/teams/team-generation"
	"team-maker/database"
	"team-maker/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /teams/generate/db", generateFromDb)
	mux.HandleFunc("GET /teams/sessions/{sessionId}", getSession)
	mux.HandleFunc("POST /teams/sessions/list", listSessions)
}

// generateFromDb monta os times a partir do cadastro: carrega jogadores e
// notas atuais, roda o gerador e grava o resultado como uma sessão nova.
// Repetir o mesmo payload gera outra sessão com outra distribuição de
// empates (é o "reembaralhar" do frontend).
func generateFromDb(w http.ResponseWriter, r *http.Request) {
	req := &GenerateDbRequest{}
	if err := apiutil.DecodeJSON(r, req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidPayload, "invalid JSON payload", nil)
		return
	}
	req.applyDefaults()

	playerIds := dedupeIds(req.PlayerIds)

	db, err := database.GetConnectionWithContext(r.Context())
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "database unavailable", nil)
		return
	}

	enginePlayers, failed := loadEnginePlayers(w, db, req, playerIds)
	if failed {
		return
	}

	engineReq := &teamGeneration.GenerationRequest{
		TeamCount:      int(req.TeamCount),
		PlayersPerTeam: int(req.PlayersPerTeam),
		Players:        enginePlayers,
		Skills:         req.toEngineSkills(),
		SexBalance: teamGeneration.SexBalanceRule{
			Enabled:     req.SexBalance.Enabled,
			MaxMaleDiff: req.SexBalance.MaxMaleDiff,
		},
		SexMultiplier: teamGeneration.SexMultiplier{
			M: req.SexMultiplier.M,
			F: req.SexMultiplier.F,
		},
		// seed nova a cada chamada, guardada na sessão junto com o resto da entrada
		Seed: time.Now().UnixNano(),
	}

	generator := teamGeneration.GetTeamGenerator(teamGeneration.GeneratorTypeSnakeDraft)
	engineTeams, err := generator.GenerateTeams(engineReq)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	session := buildSession(req, playerIds, engineReq.Seed, engineTeams)

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(session).Error
	}); err != nil {
		// os times foram calculados, só não foram salvos; o caller precisa saber a diferença
		log.Error().Err(err).Msg("falha ao gravar a sessão de geração")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodePersistenceFailed, "teams were generated but could not be saved", nil)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, buildDetailView(session.PublicId, engineTeams))
}

// loadEnginePlayers lê o snapshot numa transação só: jogadores + notas atuais
// nas skills selecionadas. Retorna failed = true com a resposta já escrita.
func loadEnginePlayers(w http.ResponseWriter, db *gorm.DB, req *GenerateDbRequest, playerIds []int64) ([]*teamGeneration.Player, bool) {
	skillIds := make([]int64, 0, len(req.SelectedSkills))
	for _, skill := range req.SelectedSkills {
		skillIds = append(skillIds, skill.SkillId)
	}

	var enginePlayers []*teamGeneration.Player
	var missingPlayerIds, inactivePlayerIds, missingSkillIds []int64

	err := db.Transaction(func(tx *gorm.DB) error {
		var players []*models.Player
		if len(playerIds) > 0 {
			if result := tx.Find(&players, playerIds); result.Error != nil {
				return result.Error
			}
		}

		byId := make(map[int64]*models.Player, len(players))
		for _, player := range players {
			byId[player.Id] = player
			if !player.Active {
				inactivePlayerIds = append(inactivePlayerIds, player.Id)
			}
		}
		for _, id := range playerIds {
			if _, ok := byId[id]; !ok {
				missingPlayerIds = append(missingPlayerIds, id)
			}
		}
		if len(missingPlayerIds) > 0 || len(inactivePlayerIds) > 0 {
			return gorm.ErrRecordNotFound
		}

		if len(skillIds) > 0 {
			var skills []*models.Skill
			if result := tx.Find(&skills, skillIds); result.Error != nil {
				return result.Error
			}
			existing := make(map[int64]struct{}, len(skills))
			for _, skill := range skills {
				existing[skill.Id] = struct{}{}
			}
			for _, skillId := range skillIds {
				if _, ok := existing[skillId]; !ok {
					missingSkillIds = append(missingSkillIds, skillId)
				}
			}
			if len(missingSkillIds) > 0 {
				return gorm.ErrRecordNotFound
			}
		}

		var ratings []*models.SkillRating
		if len(playerIds) > 0 && len(skillIds) > 0 {
			result := tx.Where(&models.SkillRating{Current: true}, "Current").
				Where("sr_player_id IN ?", playerIds).
				Where("sr_skill_id IN ?", skillIds).
				Find(&ratings)
			if result.Error != nil {
				return result.Error
			}
		}

		ratingsByPlayer := make(map[int64]map[int64]float64, len(playerIds))
		for _, rating := range ratings {
			playerRatings := ratingsByPlayer[rating.PlayerId]
			if playerRatings == nil {
				playerRatings = map[int64]float64{}
				ratingsByPlayer[rating.PlayerId] = playerRatings
			}
			playerRatings[rating.SkillId] = rating.Rating
		}

		enginePlayers = make([]*teamGeneration.Player, 0, len(playerIds))
		for _, id := range playerIds {
			player := byId[id]
			enginePlayers = append(enginePlayers, &teamGeneration.Player{
				Id:      player.Id,
				Name:    player.Name,
				Sex:     player.Sex,
				Ratings: ratingsByPlayer[player.Id],
			})
		}

		return nil
	})

	if err != nil {
		switch {
		case len(missingPlayerIds) > 0 || len(inactivePlayerIds) > 0:
			apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeUnknownEntity, "some players do not exist or are inactive", map[string]any{
				"missingPlayerIds":  missingPlayerIds,
				"inactivePlayerIds": inactivePlayerIds,
			})
		case len(missingSkillIds) > 0:
			apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeUnknownEntity, "some selected skills do not exist", map[string]any{
				"missingSkillIds": missingSkillIds,
			})
		default:
			log.Error().Err(err).Msg("falha ao carregar o snapshot pra geração")
			apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "failed to load players for generation", nil)
		}
		return nil, true
	}

	return enginePlayers, false
}

func buildSession(req *GenerateDbRequest, playerIds []int64, seed int64, engineTeams []*teamGeneration.Team) *models.GenerationSession {
	session := &models.GenerationSession{
		PublicId:          uuid.NewString(),
		TeamCount:         req.TeamCount,
		PlayersPerTeam:    req.PlayersPerTeam,
		SexBalanceEnabled: req.SexBalance.Enabled,
		MaxMaleDiff:       req.SexBalance.MaxMaleDiff,
		MultiplierM:       req.SexMultiplier.M,
		MultiplierF:       req.SexMultiplier.F,
		Seed:              seed,
		PlayerIds:         pq.Int64Array(playerIds),
	}

	session.SkillWeights = make([]*models.SessionSkillWeight, 0, len(req.SelectedSkills))
	for _, skill := range req.SelectedSkills {
		session.SkillWeights = append(session.SkillWeights, &models.SessionSkillWeight{
			SkillId: skill.SkillId,
			Weight:  skill.Weight,
		})
	}

	session.Teams = make([]*models.SessionTeam, 0, len(engineTeams))
	for _, engineTeam := range engineTeams {
		team := &models.SessionTeam{
			TeamIndex: int32(engineTeam.Index),
			SumScore:  engineTeam.SumScore,
		}
		team.Players = make([]*models.SessionTeamPlayer, 0, len(engineTeam.Players))
		for slot, member := range engineTeam.Players {
			team.Players = append(team.Players, &models.SessionTeamPlayer{
				PlayerId: member.Player.Id,
				Score:    member.Score,
				Slot:     int32(slot),
			})
		}
		session.Teams = append(session.Teams, team)
	}

	return session
}

// buildDetailView monta a resposta direto do resultado do gerador,
// sem reler o que acabou de ser gravado
func buildDetailView(sessionId string, engineTeams []*teamGeneration.Team) *models.GenerationSessionDetailView {
	view := &models.GenerationSessionDetailView{
		SessionId: sessionId,
		Teams:     make([]*models.SessionTeamView, 0, len(engineTeams)),
	}

	for _, engineTeam := range engineTeams {
		teamView := &models.SessionTeamView{
			TeamIndex: int32(engineTeam.Index),
			SumScore:  engineTeam.SumScore,
			Players:   make([]*models.SessionTeamPlayerView, 0, len(engineTeam.Players)),
		}
		for _, member := range engineTeam.Players {
			teamView.Players = append(teamView.Players, &models.SessionTeamPlayerView{
				PlayerId: member.Player.Id,
				Name:     member.Player.Name,
				Sex:      member.Player.Sex,
				Score:    member.Score,
			})
		}
		view.Teams = append(view.Teams, teamView)
	}

	return view
}

func writeEngineError(w http.ResponseWriter, err error) {
	var shapeErr *teamGeneration.InvalidShapeError
	var insufficientErr *teamGeneration.InsufficientPlayersError
	var balanceErr *teamGeneration.UnsatisfiableSexBalanceError

	switch {
	case errors.As(err, &shapeErr):
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidShape, err.Error(), map[string]any{
			"teamCount":      shapeErr.TeamCount,
			"playersPerTeam": shapeErr.PlayersPerTeam,
		})
	case errors.As(err, &insufficientErr):
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInsufficientPlayers, err.Error(), map[string]any{
			"required":  insufficientErr.Required,
			"available": insufficientErr.Available,
		})
	case errors.As(err, &balanceErr):
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeUnsatisfiableSexBalance, err.Error(), map[string]any{
			"teamCount":   balanceErr.TeamCount,
			"maxMaleDiff": balanceErr.MaxMaleDiff,
			"maleCount":   balanceErr.MaleCount,
			"femaleCount": balanceErr.FemaleCount,
		})
	case errors.Is(err, teamGeneration.ErrNoWeightedSkills), errors.Is(err, teamGeneration.ErrNegativeSkillWeight):
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeNoWeightedSkills, err.Error(), nil)
	case errors.Is(err, teamGeneration.ErrInvalidSexMultiplier), errors.Is(err, teamGeneration.ErrNegativeMaxMaleDiff):
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.ErrorCodeInvalidShape, err.Error(), nil)
	default:
		log.Error().Err(err).Msg("falha inesperada na geração de times")
		apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "team generation failed", nil)
	}
}
