package teamGeneration

import (
	"testing"

	"team-maker/models"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCalculateScore(t *testing.T) {
	Convey("Given um jogador com notas em duas skills", t, func() {
		player := &Player{
			Id:   1,
			Sex:  models.SexMale,
			Ratings: map[int64]float64{
				10: 4.0,
				20: 2.0,
			},
		}
		neutral := SexMultiplier{M: 1.0, F: 1.0}

		Convey("O score é a média ponderada das notas", func() {
			skills := []SkillWeight{
				{SkillId: 10, Weight: 3},
				{SkillId: 20, Weight: 1},
			}

			// (3*4 + 1*2) / 4 = 3.5
			So(CalculateScore(player, skills, neutral), ShouldAlmostEqual, 3.5)
		})

		Convey("Escalar todos os pesos não muda o score", func() {
			skills := []SkillWeight{
				{SkillId: 10, Weight: 3},
				{SkillId: 20, Weight: 1},
			}
			scaled := []SkillWeight{
				{SkillId: 10, Weight: 30},
				{SkillId: 20, Weight: 10},
			}

			So(CalculateScore(player, scaled, neutral), ShouldAlmostEqual, CalculateScore(player, skills, neutral))
		})

		Convey("Skill sem nota conta como zero", func() {
			skills := []SkillWeight{
				{SkillId: 10, Weight: 1},
				{SkillId: 99, Weight: 1},
			}

			// (4 + 0) / 2 = 2
			So(CalculateScore(player, skills, neutral), ShouldAlmostEqual, 2.0)
		})

		Convey("Aumentar o peso de uma skill puxa o score na direção da nota dela", func() {
			lowOnStrong := []SkillWeight{
				{SkillId: 10, Weight: 1},
				{SkillId: 20, Weight: 3},
			}
			highOnStrong := []SkillWeight{
				{SkillId: 10, Weight: 3},
				{SkillId: 20, Weight: 1},
			}

			So(CalculateScore(player, highOnStrong, neutral), ShouldBeGreaterThan, CalculateScore(player, lowOnStrong, neutral))
		})

		Convey("O resultado é determinístico", func() {
			skills := []SkillWeight{
				{SkillId: 10, Weight: 2},
				{SkillId: 20, Weight: 5},
			}

			first := CalculateScore(player, skills, neutral)
			for i := 0; i < 10; i++ {
				So(CalculateScore(player, skills, neutral), ShouldEqual, first)
			}
		})
	})

	Convey("Given o multiplicador de sexo", t, func() {
		skills := []SkillWeight{{SkillId: 10, Weight: 1}}
		ratings := map[int64]float64{10: 4.0}
		multiplier := SexMultiplier{M: 1.0, F: 0.92}

		male := &Player{Id: 1, Sex: models.SexMale, Ratings: ratings}
		female := &Player{Id: 2, Sex: models.SexFemale, Ratings: ratings}

		Convey("Jogadores com as mesmas notas recebem o multiplicador do seu sexo", func() {
			So(CalculateScore(male, skills, multiplier), ShouldAlmostEqual, 4.0)
			So(CalculateScore(female, skills, multiplier), ShouldAlmostEqual, 4.0*0.92)
		})
	})

	Convey("Given um conjunto de skills sem peso útil", t, func() {
		player := &Player{Id: 1, Sex: models.SexMale, Ratings: map[int64]float64{10: 5.0}}

		Convey("O score cai pra zero em vez de dividir por zero", func() {
			So(CalculateScore(player, nil, SexMultiplier{M: 1, F: 1}), ShouldEqual, 0)
			So(CalculateScore(player, []SkillWeight{{SkillId: 10, Weight: 0}}, SexMultiplier{M: 1, F: 1}), ShouldEqual, 0)
		})
	})
}
