package teamGeneration

import (
	"team-maker/models"
)

// CalculateScore calcula a força de um jogador: média ponderada das notas nas
// skills selecionadas, normalizada pela soma dos pesos (pra escala continuar
// 0-5 independente de quantas skills entraram), vezes o multiplicador do sexo.
//
// Jogador sem nota em uma skill conta como 0 nela; um jogador sem nota nenhuma
// vale 0 e vai parar no fim de algum time, o que é o comportamento esperado.
// Função pura: mesmas entradas, mesmo score, sempre.
func CalculateScore(player *Player, skills []SkillWeight, multiplier SexMultiplier) float64 {
	var sumWeights, weightedSum float64
	for _, sw := range skills {
		sumWeights += sw.Weight
		weightedSum += sw.Weight * player.Ratings[sw.SkillId]
	}

	if sumWeights <= 0 {
		// barrado na validação do request; aqui só evita divisão por zero
		return 0
	}

	score := weightedSum / sumWeights
	if player.Sex == models.SexFemale {
		return score * multiplier.F
	}
	return score * multiplier.M
}
