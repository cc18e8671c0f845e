package models

import (
	"team-maker/database"

	"gorm.io/gorm"
)

type SessionTeam struct {
	database.BaseModel
	SessionId int64              `gorm:"not null;index"`
	Session   *GenerationSession `gorm:"foreignKey:SessionId"`
	TeamIndex int32              `gorm:"not null"`
	SumScore  float64            `gorm:"not null"`

	Players []*SessionTeamPlayer `gorm:"foreignKey:SessionTeamId"`
}

type SessionTeamView struct {
	TeamIndex int32                    `json:"teamIndex"`
	SumScore  float64                  `json:"sumScore"`
	Players   []*SessionTeamPlayerView `json:"players"`
}

type SessionTeamPlayerView struct {
	PlayerId int64   `json:"playerId"`
	Name     string  `json:"name"`
	Sex      Sex     `json:"sex"`
	Score    float64 `json:"score"`
}

func (st *SessionTeam) ConvertToView(tx *gorm.DB) (*SessionTeamView, error) {
	members := st.Players
	if members == nil {
		r := tx.Joins("Player").Where(SessionTeamPlayer{
			SessionTeamId: st.Id,
		}, "SessionTeamId").Order("stp_slot").Find(&members)
		if r.Error != nil {
			return nil, r.Error
		}
	}

	view := &SessionTeamView{}
	view.TeamIndex = st.TeamIndex
	view.SumScore = st.SumScore
	view.Players = make([]*SessionTeamPlayerView, 0, len(members))

	for _, member := range members {
		if member.Player == nil {
			// jogador deletado depois da geração; mantém a linha sem dados do cadastro
			member.Player = &Player{}
			member.Player.Id = member.PlayerId
		}

		view.Players = append(view.Players, &SessionTeamPlayerView{
			PlayerId: member.PlayerId,
			Name:     member.Player.Name,
			Sex:      member.Player.Sex,
			Score:    member.Score,
		})
	}

	return view, nil
}
