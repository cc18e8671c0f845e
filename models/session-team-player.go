package models

type SessionTeamPlayer struct {
	SessionTeamId int64 `gorm:"primaryKey;autoIncrement:false"`
	SessionTeam   *SessionTeam
	PlayerId      int64 `gorm:"primaryKey;autoIncrement:false"`
	Player        *Player
	Score         float64 `gorm:"not null"`
	Slot          int32   `gorm:"not null;default:0"` // ordem do jogador dentro do time (ordem do draft)
}
