package teamGeneration

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"team-maker/models"
	otherUtils "team-maker/utils/other"
)

// SnakeDraftGenerator monta os times com um draft em serpentina: ordena o pool
// por score e distribui alternando a direção a cada rodada (1..n, n..1, ...).
// É determinístico pra uma mesma seed e chega bem perto do balanceamento ótimo
// sem precisar de busca exaustiva.
type SnakeDraftGenerator struct {
}

func (g *SnakeDraftGenerator) GenerateTeams(req *GenerationRequest) ([]*Team, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	n := req.TeamCount
	total := n * req.PlayersPerTeam

	pool := make([]*TeamPlayer, 0, total)
	for _, player := range req.Players[:total] {
		pool = append(pool, &TeamPlayer{
			Player: player,
			Score:  CalculateScore(player, req.Skills, req.SexMultiplier),
		})
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// o sort logo abaixo é estável, então o shuffle só decide a ordem relativa
	// de jogadores com score igual; é daí que o "reembaralhar" tira variação
	// sem deixar a ordem de chegada do request influenciar o draft
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	// cotas por time quando o equilíbrio de sexo está ligado;
	// nil = qualquer jogador serve em qualquer time
	var maleLeft, femaleLeft []int
	if req.SexBalance.Enabled {
		maleCount := 0
		for _, tp := range pool {
			if tp.Player.Sex == models.SexMale {
				maleCount++
			}
		}

		quotas, err := maleQuotasPerTeam(req, maleCount, total-maleCount)
		if err != nil {
			return nil, err
		}

		maleLeft = quotas
		femaleLeft = make([]int, n)
		for i := range femaleLeft {
			femaleLeft[i] = req.PlayersPerTeam - quotas[i]
		}
	}

	teams := make([]*Team, n)
	for i := range teams {
		teams[i] = &Team{
			Index:   i + 1,
			Players: make([]*TeamPlayer, 0, req.PlayersPerTeam),
		}
	}

	remaining := pool
	for round := 0; round < req.PlayersPerTeam; round++ {
		for pick := 0; pick < n; pick++ {
			teamIdx := otherUtils.IIf(round%2 == 1, n-1-pick, pick)

			// pega o melhor jogador restante que ainda cabe na cota do time
			pickIdx := -1
			for i, tp := range remaining {
				if maleLeft != nil {
					if tp.Player.Sex == models.SexMale {
						if maleLeft[teamIdx] <= 0 {
							continue
						}
					} else if femaleLeft[teamIdx] <= 0 {
						continue
					}
				}
				pickIdx = i
				break
			}
			if pickIdx < 0 {
				// não acontece: as cotas somadas fecham exatamente com o pool
				return nil, errors.New("no remaining player fits the team quotas")
			}

			tp := remaining[pickIdx]
			remaining = append(remaining[:pickIdx], remaining[pickIdx+1:]...)

			if maleLeft != nil {
				if tp.Player.Sex == models.SexMale {
					maleLeft[teamIdx]--
				} else {
					femaleLeft[teamIdx]--
				}
			}

			teams[teamIdx].Players = append(teams[teamIdx].Players, tp)
			teams[teamIdx].SumScore += tp.Score
		}
	}

	return teams, nil
}
