package database

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type BaseModel struct {
	Id        int64     `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"<-:create"`
	UpdatedAt time.Time
}

type BaseModelWithSoftDelete struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// NamingStrategy prefixa as colunas com as iniciais da tabela
// (players -> p_name, skill_ratings -> sr_rating, etc)
// evita ambiguidade nos joins sem precisar qualificar coluna por coluna
type NamingStrategy struct {
	schema.NamingStrategy
}

func (ns NamingStrategy) ColumnName(table, column string) string {
	name := ns.NamingStrategy.ColumnName("", column)
	if table == "" {
		return name
	}
	return TablePrefix(table) + "_" + name
}

// TablePrefix retorna as iniciais das palavras do nome da tabela
// ex: session_team_players -> stp
func TablePrefix(table string) string {
	var sb strings.Builder
	for _, part := range strings.Split(table, "_") {
		if part == "" {
			continue
		}
		sb.WriteByte(part[0])
	}
	return sb.String()
}
