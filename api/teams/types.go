package teams

import (
	teamGeneration "team-maker/api/teams/team-generation"
	"team-maker/database"
	"team-maker/models"
)

// defaults do multiplicador quando o request não manda nenhum
const (
	defaultMultiplierM = 1.0
	defaultMultiplierF = 0.92
)

type SkillWeightInput struct {
	SkillId int64   `json:"skillId"`
	Weight  float64 `json:"weight"`
}

type SexBalanceInput struct {
	Enabled     bool  `json:"enabled"`
	MaxMaleDiff int32 `json:"maxMaleDiff"`
}

type SexMultiplierInput struct {
	M float64 `json:"M"`
	F float64 `json:"F"`
}

type GenerateDbRequest struct {
	TeamCount      int32               `json:"teamCount"`
	PlayersPerTeam int32               `json:"playersPerTeam"`
	PlayerIds      []int64             `json:"playerIds"`
	SelectedSkills []*SkillWeightInput `json:"selectedSkills"`
	SexBalance     *SexBalanceInput    `json:"sexBalance"`
	SexMultiplier  *SexMultiplierInput `json:"sexMultiplier"`
}

type SessionListRequest struct {
	Filters    []*database.FilterData   `json:"filters"`
	Pagination *database.PaginationData `json:"pagination"`
}

type SessionListResponse struct {
	Metadata *database.PaginatedResponseMetadata `json:"metadata"`
	Data     []*models.GenerationSessionView     `json:"data"`
}

func (req *GenerateDbRequest) applyDefaults() {
	if req.SexBalance == nil {
		req.SexBalance = &SexBalanceInput{}
	}
	if req.SexMultiplier == nil {
		req.SexMultiplier = &SexMultiplierInput{
			M: defaultMultiplierM,
			F: defaultMultiplierF,
		}
	}
}

// dedupeIds remove repetições preservando a primeira ocorrência
// (a ordem importa: o gerador consome os primeiros N*k ids)
func dedupeIds(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func (req *GenerateDbRequest) toEngineSkills() []teamGeneration.SkillWeight {
	skills := make([]teamGeneration.SkillWeight, 0, len(req.SelectedSkills))
	for _, skill := range req.SelectedSkills {
		skills = append(skills, teamGeneration.SkillWeight{
			SkillId: skill.SkillId,
			Weight:  skill.Weight,
		})
	}
	return skills
}
