package teamGeneration

func validateRequest(req *GenerationRequest) error {
	if req.TeamCount <= 0 || req.PlayersPerTeam <= 0 {
		return &InvalidShapeError{
			TeamCount:      req.TeamCount,
			PlayersPerTeam: req.PlayersPerTeam,
		}
	}

	hasPositiveWeight := false
	for _, sw := range req.Skills {
		if sw.Weight < 0 {
			return ErrNegativeSkillWeight
		}
		if sw.Weight > 0 {
			hasPositiveWeight = true
		}
	}
	if !hasPositiveWeight {
		return ErrNoWeightedSkills
	}

	if req.SexMultiplier.M <= 0 || req.SexMultiplier.F <= 0 {
		return ErrInvalidSexMultiplier
	}

	if req.SexBalance.Enabled && req.SexBalance.MaxMaleDiff < 0 {
		return ErrNegativeMaxMaleDiff
	}

	required := req.TeamCount * req.PlayersPerTeam
	if len(req.Players) < required {
		return &InsufficientPlayersError{
			Required:  required,
			Available: len(req.Players),
		}
	}

	return nil
}

// maleQuotasPerTeam distribui os homens entre os times: base igual pra todos e
// as sobras vão pros primeiros. Com isso a diferença de homens entre quaisquer
// dois times é no máximo 1, então a regra só fica insatisfazível quando
// maxMaleDiff é 0 e a divisão não é exata.
func maleQuotasPerTeam(req *GenerationRequest, maleCount, femaleCount int) ([]int, error) {
	base := maleCount / req.TeamCount
	extra := maleCount % req.TeamCount

	if extra != 0 && req.SexBalance.MaxMaleDiff < 1 {
		return nil, &UnsatisfiableSexBalanceError{
			TeamCount:   req.TeamCount,
			MaxMaleDiff: req.SexBalance.MaxMaleDiff,
			MaleCount:   maleCount,
			FemaleCount: femaleCount,
		}
	}

	quotas := make([]int, req.TeamCount)
	for i := range quotas {
		quotas[i] = base
		if i < extra {
			quotas[i]++
		}
	}

	return quotas, nil
}
