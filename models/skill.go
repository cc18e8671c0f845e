package models

import (
	"team-maker/database"

	"gorm.io/gorm"
)

type Skill struct {
	database.BaseModelWithSoftDelete
	Code   string `gorm:"not null;uniqueIndex"` // se deletar a skill, o unique impede recadastrar o mesmo code; ter isso em mente
	Name   string `gorm:"not null"`
	Active bool   `gorm:"not null;default:true"`
}

type SkillView struct {
	Id     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (s *Skill) ConvertToView(tx *gorm.DB) (*SkillView, error) {
	view := &SkillView{}
	view.Id = s.Id
	view.Code = s.Code
	view.Name = s.Name
	view.Active = s.Active

	return view, nil
}
