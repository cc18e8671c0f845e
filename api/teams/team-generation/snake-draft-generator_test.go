package teamGeneration

import (
	"math"
	"testing"

	"team-maker/models"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestPlayer(id int64, sex models.Sex, rating float64) *Player {
	return &Player{
		Id:      id,
		Sex:     sex,
		Ratings: map[int64]float64{10: rating},
	}
}

func countBySex(team *Team) (males, females int) {
	for _, tp := range team.Players {
		if tp.Player.Sex == models.SexMale {
			males++
		} else {
			females++
		}
	}
	return
}

func draftedIds(teams []*Team) map[int64]int {
	ids := map[int64]int{}
	for _, team := range teams {
		for _, tp := range team.Players {
			ids[tp.Player.Id]++
		}
	}
	return ids
}

func TestSnakeDraftGenerator(t *testing.T) {
	generator := GetTeamGenerator(GeneratorTypeSnakeDraft)

	Convey("Given 8 jogadores (4M/4F) pra 2 times de 4 com equilíbrio de sexo estrito", t, func() {
		req := &GenerationRequest{
			TeamCount:      2,
			PlayersPerTeam: 4,
			Players: []*Player{
				newTestPlayer(1, models.SexMale, 5),
				newTestPlayer(2, models.SexMale, 4),
				newTestPlayer(3, models.SexMale, 3),
				newTestPlayer(4, models.SexMale, 2),
				newTestPlayer(5, models.SexFemale, 5),
				newTestPlayer(6, models.SexFemale, 4),
				newTestPlayer(7, models.SexFemale, 3),
				newTestPlayer(8, models.SexFemale, 2),
			},
			Skills:        []SkillWeight{{SkillId: 10, Weight: 1}},
			SexBalance:    SexBalanceRule{Enabled: true, MaxMaleDiff: 0},
			SexMultiplier: SexMultiplier{M: 1.0, F: 1.0},
			Seed:          42,
		}

		teams, err := generator.GenerateTeams(req)

		Convey("A geração funciona", func() {
			So(err, ShouldBeNil)
			So(teams, ShouldHaveLength, 2)
		})

		Convey("Cada jogador aparece em exatamente um time", func() {
			ids := draftedIds(teams)
			So(ids, ShouldHaveLength, 8)
			for _, count := range ids {
				So(count, ShouldEqual, 1)
			}
		})

		Convey("Todo time tem exatamente 2 homens e 2 mulheres", func() {
			for _, team := range teams {
				So(team.Players, ShouldHaveLength, 4)
				males, females := countBySex(team)
				So(males, ShouldEqual, 2)
				So(females, ShouldEqual, 2)
			}
		})

		Convey("As somas de score ficam próximas", func() {
			So(math.Abs(teams[0].SumScore-teams[1].SumScore), ShouldBeLessThanOrEqualTo, 1.0)
		})

		Convey("A soma do time bate com a soma dos scores individuais", func() {
			for _, team := range teams {
				sum := 0.0
				for _, tp := range team.Players {
					sum += tp.Score
				}
				So(team.SumScore, ShouldAlmostEqual, sum)
			}
		})

		Convey("Os índices dos times começam em 1 e são sequenciais", func() {
			So(teams[0].Index, ShouldEqual, 1)
			So(teams[1].Index, ShouldEqual, 2)
		})
	})

	Convey("Given um request sem nenhuma skill com peso positivo", t, func() {
		req := &GenerationRequest{
			TeamCount:      2,
			PlayersPerTeam: 1,
			Players: []*Player{
				newTestPlayer(1, models.SexMale, 5),
				newTestPlayer(2, models.SexMale, 4),
			},
			Skills:        []SkillWeight{{SkillId: 10, Weight: 0}, {SkillId: 20, Weight: 0}},
			SexMultiplier: SexMultiplier{M: 1, F: 1},
		}

		Convey("A geração falha antes de montar qualquer time", func() {
			teams, err := generator.GenerateTeams(req)
			So(teams, ShouldBeNil)
			So(err, ShouldEqual, ErrNoWeightedSkills)
		})
	})

	Convey("Given menos jogadores do que os times precisam", t, func() {
		players := make([]*Player, 0, 7)
		for i := int64(1); i <= 7; i++ {
			players = append(players, newTestPlayer(i, models.SexMale, 3))
		}
		req := &GenerationRequest{
			TeamCount:      2,
			PlayersPerTeam: 4,
			Players:        players,
			Skills:         []SkillWeight{{SkillId: 10, Weight: 1}},
			SexMultiplier:  SexMultiplier{M: 1, F: 1},
		}

		Convey("A geração falha informando o necessário e o disponível", func() {
			teams, err := generator.GenerateTeams(req)
			So(teams, ShouldBeNil)

			var insufficientErr *InsufficientPlayersError
			So(err, ShouldHaveSameTypeAs, insufficientErr)
			insufficientErr = err.(*InsufficientPlayersError)
			So(insufficientErr.Required, ShouldEqual, 8)
			So(insufficientErr.Available, ShouldEqual, 7)
		})
	})

	Convey("Given um número ímpar de homens com maxMaleDiff 0", t, func() {
		req := &GenerationRequest{
			TeamCount:      2,
			PlayersPerTeam: 4,
			Players: []*Player{
				newTestPlayer(1, models.SexMale, 5),
				newTestPlayer(2, models.SexMale, 4),
				newTestPlayer(3, models.SexMale, 3),
				newTestPlayer(4, models.SexFemale, 5),
				newTestPlayer(5, models.SexFemale, 4),
				newTestPlayer(6, models.SexFemale, 3),
				newTestPlayer(7, models.SexFemale, 2),
				newTestPlayer(8, models.SexFemale, 1),
			},
			Skills:        []SkillWeight{{SkillId: 10, Weight: 1}},
			SexBalance:    SexBalanceRule{Enabled: true, MaxMaleDiff: 0},
			SexMultiplier: SexMultiplier{M: 1, F: 1},
		}

		Convey("A geração falha como insatisfazível", func() {
			teams, err := generator.GenerateTeams(req)
			So(teams, ShouldBeNil)

			var balanceErr *UnsatisfiableSexBalanceError
			So(err, ShouldHaveSameTypeAs, balanceErr)
			balanceErr = err.(*UnsatisfiableSexBalanceError)
			So(balanceErr.MaleCount, ShouldEqual, 3)
			So(balanceErr.FemaleCount, ShouldEqual, 5)
		})

		Convey("Com maxMaleDiff 1 a mesma entrada funciona e a diferença fica em 1", func() {
			req.SexBalance.MaxMaleDiff = 1

			teams, err := generator.GenerateTeams(req)
			So(err, ShouldBeNil)

			malesFirst, _ := countBySex(teams[0])
			malesSecond, _ := countBySex(teams[1])
			So(math.Abs(float64(malesFirst-malesSecond)), ShouldBeLessThanOrEqualTo, 1)
			So(malesFirst+malesSecond, ShouldEqual, 3)
		})

		Convey("Com o equilíbrio desligado a mesma entrada funciona", func() {
			req.SexBalance = SexBalanceRule{Enabled: false}

			teams, err := generator.GenerateTeams(req)
			So(err, ShouldBeNil)
			So(draftedIds(teams), ShouldHaveLength, 8)
		})
	})

	Convey("Given mais jogadores do que os times comportam", t, func() {
		players := make([]*Player, 0, 10)
		for i := int64(1); i <= 10; i++ {
			players = append(players, newTestPlayer(i, models.SexMale, float64(i%5)+1))
		}
		req := &GenerationRequest{
			TeamCount:      2,
			PlayersPerTeam: 4,
			Players:        players,
			Skills:         []SkillWeight{{SkillId: 10, Weight: 1}},
			SexMultiplier:  SexMultiplier{M: 1, F: 1},
			Seed:           7,
		}

		Convey("Só os primeiros teamCount*playersPerTeam entram no draft", func() {
			teams, err := generator.GenerateTeams(req)
			So(err, ShouldBeNil)

			ids := draftedIds(teams)
			So(ids, ShouldHaveLength, 8)
			So(ids, ShouldNotContainKey, int64(9))
			So(ids, ShouldNotContainKey, int64(10))
		})
	})

	Convey("Given jogadores com scores todos iguais", t, func() {
		players := make([]*Player, 0, 8)
		for i := int64(1); i <= 8; i++ {
			players = append(players, newTestPlayer(i, models.SexMale, 3))
		}
		buildReq := func(seed int64) *GenerationRequest {
			return &GenerationRequest{
				TeamCount:      2,
				PlayersPerTeam: 4,
				Players:        players,
				Skills:         []SkillWeight{{SkillId: 10, Weight: 1}},
				SexMultiplier:  SexMultiplier{M: 1, F: 1},
				Seed:           seed,
			}
		}

		Convey("A mesma seed produz exatamente os mesmos times", func() {
			first, err := generator.GenerateTeams(buildReq(99))
			So(err, ShouldBeNil)
			second, err := generator.GenerateTeams(buildReq(99))
			So(err, ShouldBeNil)

			for i := range first {
				So(second[i].Players, ShouldHaveLength, len(first[i].Players))
				for j := range first[i].Players {
					So(second[i].Players[j].Player.Id, ShouldEqual, first[i].Players[j].Player.Id)
				}
			}
		})
	})

	Convey("Given requests com parâmetros inválidos", t, func() {
		validPlayers := []*Player{
			newTestPlayer(1, models.SexMale, 5),
			newTestPlayer(2, models.SexMale, 4),
		}

		Convey("teamCount não positivo falha com a forma inválida", func() {
			req := &GenerationRequest{
				TeamCount:      0,
				PlayersPerTeam: 2,
				Players:        validPlayers,
				Skills:         []SkillWeight{{SkillId: 10, Weight: 1}},
				SexMultiplier:  SexMultiplier{M: 1, F: 1},
			}

			_, err := generator.GenerateTeams(req)
			var shapeErr *InvalidShapeError
			So(err, ShouldHaveSameTypeAs, shapeErr)
		})

		Convey("Peso negativo é rejeitado", func() {
			req := &GenerationRequest{
				TeamCount:      2,
				PlayersPerTeam: 1,
				Players:        validPlayers,
				Skills:         []SkillWeight{{SkillId: 10, Weight: -1}},
				SexMultiplier:  SexMultiplier{M: 1, F: 1},
			}

			_, err := generator.GenerateTeams(req)
			So(err, ShouldEqual, ErrNegativeSkillWeight)
		})

		Convey("Multiplicador não positivo é rejeitado", func() {
			req := &GenerationRequest{
				TeamCount:      2,
				PlayersPerTeam: 1,
				Players:        validPlayers,
				Skills:         []SkillWeight{{SkillId: 10, Weight: 1}},
				SexMultiplier:  SexMultiplier{M: 1, F: 0},
			}

			_, err := generator.GenerateTeams(req)
			So(err, ShouldEqual, ErrInvalidSexMultiplier)
		})

		Convey("maxMaleDiff negativo é rejeitado", func() {
			req := &GenerationRequest{
				TeamCount:      2,
				PlayersPerTeam: 1,
				Players:        validPlayers,
				Skills:         []SkillWeight{{SkillId: 10, Weight: 1}},
				SexBalance:     SexBalanceRule{Enabled: true, MaxMaleDiff: -1},
				SexMultiplier:  SexMultiplier{M: 1, F: 1},
			}

			_, err := generator.GenerateTeams(req)
			So(err, ShouldEqual, ErrNegativeMaxMaleDiff)
		})
	})
}
