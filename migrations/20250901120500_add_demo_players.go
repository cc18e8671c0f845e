package migrations

import (
	"team-maker/models"
	"team-maker/utils/env"

	"github.com/mroth/weightedrand/v2"
	"github.com/ottomillrath/goose/v2"
	"gorm.io/gorm"
)

func init() {
	goose.AddMigration(service, upAddDemoPlayers, downAddDemoPlayers)
}

var demoPlayerNames = []struct {
	name string
	sex  models.Sex
}{
	{"Ana Demo", models.SexFemale},
	{"Beatriz Demo", models.SexFemale},
	{"Camila Demo", models.SexFemale},
	{"Daniela Demo", models.SexFemale},
	{"Elisa Demo", models.SexFemale},
	{"Fernanda Demo", models.SexFemale},
	{"Gabriela Demo", models.SexFemale},
	{"Helena Demo", models.SexFemale},
	{"Igor Demo", models.SexMale},
	{"João Demo", models.SexMale},
	{"Kaique Demo", models.SexMale},
	{"Lucas Demo", models.SexMale},
	{"Marcos Demo", models.SexMale},
	{"Nicolas Demo", models.SexMale},
	{"Otávio Demo", models.SexMale},
	{"Pedro Demo", models.SexMale},
}

// upAddDemoPlayers cria um elenco de demonstração com notas aleatórias,
// só quando SEED_DEMO_PLAYERS=true (útil pra testar a geração sem cadastro)
func upAddDemoPlayers(tx *gorm.DB) error {
	if seed, _ := env.GetBool("SEED_DEMO_PLAYERS"); !seed {
		return nil
	}

	var skills []*models.Skill
	r := tx.Where(&models.Skill{Active: true}, "Active").Find(&skills)
	if r.Error != nil {
		return r.Error
	}

	// notas concentradas no meio da escala, com poucas pontas
	ratingChooser, err := weightedrand.NewChooser(
		weightedrand.NewChoice(0.0, 1),
		weightedrand.NewChoice(1.0, 3),
		weightedrand.NewChoice(2.0, 6),
		weightedrand.NewChoice(2.5, 8),
		weightedrand.NewChoice(3.0, 8),
		weightedrand.NewChoice(3.5, 6),
		weightedrand.NewChoice(4.0, 4),
		weightedrand.NewChoice(4.5, 2),
		weightedrand.NewChoice(5.0, 1),
	)
	if err != nil {
		return err
	}

	for _, demo := range demoPlayerNames {
		player := &models.Player{
			Name:   demo.name,
			Sex:    demo.sex,
			Active: true,
		}
		r := tx.Create(player)
		if r.Error != nil {
			return r.Error
		}

		for _, skill := range skills {
			rating := &models.SkillRating{
				PlayerId: player.Id,
				SkillId:  skill.Id,
				Rating:   ratingChooser.Pick(),
				Current:  true,
			}
			r := tx.Create(rating)
			if r.Error != nil {
				return r.Error
			}
		}
	}

	return nil
}

func downAddDemoPlayers(tx *gorm.DB) error {
	var players []*models.Player
	r := tx.Where("p_name LIKE ?", "% Demo").Find(&players)
	if r.Error != nil {
		return r.Error
	}
	if len(players) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(players))
	for _, player := range players {
		ids = append(ids, player.Id)
	}

	r = tx.Where("sr_player_id IN ?", ids).Delete(&models.SkillRating{})
	if r.Error != nil {
		return r.Error
	}

	return tx.Delete(&models.Player{}, ids).Error
}
