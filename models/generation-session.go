package models

import (
	"time"

	"team-maker/database"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GenerationSession é o registro imutável de uma geração de times
// (reembaralhar com as mesmas entradas cria uma sessão nova, nunca altera uma existente)
type GenerationSession struct {
	database.BaseModel
	PublicId          string        `gorm:"not null;uniqueIndex"` // uuid exposto na API
	TeamCount         int32         `gorm:"not null"`
	PlayersPerTeam    int32         `gorm:"not null"`
	SexBalanceEnabled bool          `gorm:"not null;default:false"`
	MaxMaleDiff       int32         `gorm:"not null;default:0"`
	MultiplierM       float64       `gorm:"not null;default:1"`
	MultiplierF       float64       `gorm:"not null;default:1"`
	Seed              int64         `gorm:"not null;default:0"`
	PlayerIds         pq.Int64Array `gorm:"type:bigint[]"` // entrada consumida, na ordem usada pelo draft

	SkillWeights []*SessionSkillWeight `gorm:"foreignKey:SessionId"`
	Teams        []*SessionTeam        `gorm:"foreignKey:SessionId"`
}

// GenerationSessionView é o resumo usado nas listagens de histórico
type GenerationSessionView struct {
	SessionId         string    `json:"sessionId"`
	CreatedAt         time.Time `json:"createdAt"`
	TeamCount         int32     `json:"teamCount"`
	PlayersPerTeam    int32     `json:"playersPerTeam"`
	SexBalanceEnabled bool      `json:"sexBalanceEnabled"`
	MaxMaleDiff       int32     `json:"maxMaleDiff"`
}

// GenerationSessionDetailView é a resposta completa de geração/consulta de sessão
type GenerationSessionDetailView struct {
	SessionId string             `json:"sessionId"`
	Teams     []*SessionTeamView `json:"teams"`
}

func (gs *GenerationSession) ConvertToView(tx *gorm.DB) (*GenerationSessionView, error) {
	view := &GenerationSessionView{}
	view.SessionId = gs.PublicId
	view.CreatedAt = gs.CreatedAt
	view.TeamCount = gs.TeamCount
	view.PlayersPerTeam = gs.PlayersPerTeam
	view.SexBalanceEnabled = gs.SexBalanceEnabled
	view.MaxMaleDiff = gs.MaxMaleDiff

	return view, nil
}

func (gs *GenerationSession) ConvertToDetailView(tx *gorm.DB) (*GenerationSessionDetailView, error) {
	teams := gs.Teams
	if teams == nil {
		r := tx.Where(SessionTeam{
			SessionId: gs.Id,
		}, "SessionId").Order("st_team_index").Find(&teams)
		if r.Error != nil {
			return nil, r.Error
		}
	}

	view := &GenerationSessionDetailView{}
	view.SessionId = gs.PublicId
	view.Teams = make([]*SessionTeamView, 0, len(teams))

	for _, team := range teams {
		teamView, err := team.ConvertToView(tx)
		if err != nil {
			return nil, err
		}
		view.Teams = append(view.Teams, teamView)
	}

	return view, nil
}
