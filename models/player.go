package models

import (
	"team-maker/database"

	"gorm.io/gorm"
)

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

type Player struct {
	database.BaseModelWithSoftDelete
	Name   string `gorm:"not null;index"`
	Sex    Sex    `gorm:"not null;type:varchar(1)"`
	Active bool   `gorm:"not null;default:true"`
}

type PlayerView struct {
	Id     int64  `json:"id"`
	Name   string `json:"name"`
	Sex    Sex    `json:"sex"`
	Active bool   `json:"active"`
}

func (p *Player) ConvertToView(tx *gorm.DB) (*PlayerView, error) {
	view := &PlayerView{}
	view.Id = p.Id
	view.Name = p.Name
	view.Sex = p.Sex
	view.Active = p.Active

	return view, nil
}
