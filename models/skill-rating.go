package models

import (
	"time"

	"team-maker/database"

	"gorm.io/gorm"
)

// SkillRating guarda o histórico de notas: cada upsert insere linhas novas
// com Current = true e desmarca as anteriores, nada é sobrescrito
type SkillRating struct {
	database.BaseModel
	PlayerId int64 `gorm:"not null;index:idx_skill_ratings_player_current"`
	Player   *Player
	SkillId  int64 `gorm:"not null"`
	Skill    *Skill
	Rating   float64 `gorm:"not null"`
	Current  bool    `gorm:"not null;default:false;index:idx_skill_ratings_player_current"`
}

// RatingHistoryEntry é o viewmodel do join skill_ratings + skills
// (campos Code/Name vêm da tabela skills)
type RatingHistoryEntry struct {
	Id        int64
	CreatedAt time.Time
	PlayerId  int64
	SkillId   int64
	Rating    float64
	Current   bool
	Code      string
	Name      string
}

type RatingHistoryItemView struct {
	SkillId   int64     `json:"skillId"`
	SkillCode string    `json:"skillCode"`
	SkillName string    `json:"skillName"`
	Rating    float64   `json:"rating"`
	Current   bool      `json:"current"`
	CreatedAt time.Time `json:"createdAt"`
}

func (rhe *RatingHistoryEntry) ConvertToView(tx *gorm.DB) (*RatingHistoryItemView, error) {
	view := &RatingHistoryItemView{}
	view.SkillId = rhe.SkillId
	view.SkillCode = rhe.Code
	view.SkillName = rhe.Name
	view.Rating = rhe.Rating
	view.Current = rhe.Current
	view.CreatedAt = rhe.CreatedAt

	return view, nil
}
