package teamGeneration

import (
	"errors"
	"fmt"

	"team-maker/models"
)

var (
	ErrNoWeightedSkills     = errors.New("no selected skill with positive weight")
	ErrNegativeSkillWeight  = errors.New("skill weights cannot be negative")
	ErrNegativeMaxMaleDiff  = errors.New("max male difference cannot be negative")
	ErrInvalidSexMultiplier = errors.New("sex multipliers must be positive")
)

type InvalidShapeError struct {
	TeamCount      int
	PlayersPerTeam int
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("invalid team shape: teamCount=%d playersPerTeam=%d", e.TeamCount, e.PlayersPerTeam)
}

type InsufficientPlayersError struct {
	Required  int
	Available int
}

func (e *InsufficientPlayersError) Error() string {
	return fmt.Sprintf("insufficient players: required %d, got %d", e.Required, e.Available)
}

type UnsatisfiableSexBalanceError struct {
	TeamCount   int
	MaxMaleDiff int32
	MaleCount   int
	FemaleCount int
}

func (e *UnsatisfiableSexBalanceError) Error() string {
	return fmt.Sprintf("cannot split %d male / %d female players across %d teams keeping the male count difference within %d",
		e.MaleCount, e.FemaleCount, e.TeamCount, e.MaxMaleDiff)
}

type SkillWeight struct {
	SkillId int64
	Weight  float64
}

type SexBalanceRule struct {
	Enabled     bool
	MaxMaleDiff int32
}

type SexMultiplier struct {
	M float64
	F float64
}

type Player struct {
	Id   int64
	Name string
	Sex  models.Sex
	// Ratings mapeia skill id -> nota atual (0-5); skill ausente = sem nota, vale 0
	Ratings map[int64]float64
}

type GenerationRequest struct {
	TeamCount      int
	PlayersPerTeam int
	// Players já deduplicados pelo caller; o gerador consome somente os
	// primeiros TeamCount*PlayersPerTeam, o resto fica de fora
	Players       []*Player
	Skills        []SkillWeight
	SexBalance    SexBalanceRule
	SexMultiplier SexMultiplier
	// Seed da ordenação dos empates; 0 = usa o relógio
	// (é assim que o "reembaralhar" gera resultados diferentes com as mesmas entradas)
	Seed int64
}

type TeamPlayer struct {
	Player *Player
	Score  float64
}

type Team struct {
	Index    int
	Players  []*TeamPlayer
	SumScore float64
}

type TeamGenerator interface {
	// GenerateTeams particiona os jogadores do request em times de tamanho fixo,
	// aproximando a soma de score entre os times e respeitando a regra de
	// equilíbrio de sexo quando habilitada.
	//
	// Toda a validação acontece antes de montar qualquer time; nunca retorna
	// um resultado parcial.
	GenerateTeams(req *GenerationRequest) ([]*Team, error)
}

type GeneratorType int32

const (
	GeneratorTypeSnakeDraft GeneratorType = iota
)

func GetTeamGenerator(generatorType GeneratorType) TeamGenerator {
	switch generatorType {
	case GeneratorTypeSnakeDraft:
		return &SnakeDraftGenerator{}
	default:
		return &SnakeDraftGenerator{}
	}
}
