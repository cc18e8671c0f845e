package migrations

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"team-maker/database"
	"team-maker/models"

	"github.com/ottomillrath/goose/v2"
)

// essa versão do goose ainda exige uma pasta pra procurar migrations sql,
// mesmo que todas as nossas sejam em Go
// como o binário vai pra pasta bin, a pasta migrations fica nesse path
// relativo ao executável
const (
	migrationsPath = "../migrations"

	// o goose modificado suporta vários serviços compartilhando o mesmo
	// banco, cada um com sua tabela de versões; aqui só existe um
	service = "default"
)

func RunMigrations(ctx context.Context) error {
	dbCon, err := database.GetConnectionWithContext(ctx)
	if err != nil {
		return err
	}

	err = dbCon.AutoMigrate(
		&models.Player{},
		&models.Skill{},
		&models.SkillRating{},
		&models.GenerationSession{},
		&models.SessionSkillWeight{},
		&models.SessionTeam{},
		&models.SessionTeamPlayer{},
	)
	if err != nil {
		return err
	}

	// https://stackoverflow.com/a/18537419
	ex, err := os.Executable()
	if err != nil {
		return err
	}
	exPath := filepath.ToSlash(filepath.Dir(ex))

	err = goose.SetDialect("postgres")
	if err != nil {
		return err
	}

	exPath = path.Join(exPath, migrationsPath)
	fmt.Println("migrations dir", exPath)
	return goose.Run("up", dbCon, service, filepath.FromSlash(exPath))
}
