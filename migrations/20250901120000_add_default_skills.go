package migrations

import (
	"team-maker/models"

	"github.com/ottomillrath/goose/v2"
	"gorm.io/gorm"
)

func init() {
	goose.AddMigration(service, upAddDefaultSkills, downAddDefaultSkills)
}

// fundamentos clássicos do vôlei; grupos de outros esportes cadastram os seus
func upAddDefaultSkills(tx *gorm.DB) error {
	skills := []*models.Skill{
		{
			Code:   "SAQ",
			Name:   "Saque",
			Active: true,
		},
		{
			Code:   "REC",
			Name:   "Recepção",
			Active: true,
		},
		{
			Code:   "LEV",
			Name:   "Levantamento",
			Active: true,
		},
		{
			Code:   "ATA",
			Name:   "Ataque",
			Active: true,
		},
		{
			Code:   "BLO",
			Name:   "Bloqueio",
			Active: true,
		},
		{
			Code:   "DEF",
			Name:   "Defesa",
			Active: true,
		},
	}

	for _, skill := range skills {
		r := tx.Create(skill)
		if r.Error != nil {
			return r.Error
		}
	}

	return nil
}

func downAddDefaultSkills(tx *gorm.DB) error {
	codes := []string{"SAQ", "REC", "LEV", "ATA", "BLO", "DEF"}
	return tx.Where("s_code IN ?", codes).Delete(&models.Skill{}).Error
}
