package models

type SessionSkillWeight struct {
	SessionId int64 `gorm:"primaryKey;autoIncrement:false"`
	Session   *GenerationSession `gorm:"foreignKey:SessionId"`
	SkillId   int64 `gorm:"primaryKey;autoIncrement:false"`
	Skill     *Skill
	Weight    float64 `gorm:"not null"`
}
