// seed-owner cria (ou redefine) o usuário Owner inicial do CRM.
//
// Uso:
//
//	DB_HOST=... DB_USERNAME=... DB_PASSWORD=... go run ./cmd/seed-owner --email dono@empresa.com --name "Dono"
//
// Sem --password uma senha temporária é gerada e impressa.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/KromaEnergia/api-crm/internal/config"
	"github.com/KromaEnergia/api-crm/internal/user"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/KromaEnergia/api-crm/internal/utils/db"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "seed-owner",
		Usage: "cria ou redefine o usuário Owner",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "email do Owner", Required: true, EnvVars: []string{"OWNER_EMAIL"}},
			&cli.StringFlag{Name: "name", Usage: "nome exibido", EnvVars: []string{"OWNER_NAME"}},
			&cli.StringFlag{Name: "password", Usage: "senha; gerada se omitida", EnvVars: []string{"OWNER_PASSWORD"}},
			&cli.BoolFlag{Name: "migrate", Usage: "roda o AutoMigrate antes", Value: true},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	// o seed não emite tokens; JWT_SECRET pode faltar
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrMissingJWTSecret) {
		return err
	}
	logger := config.NewLogger(cfg)

	database, err := db.GetDB(c.Context, cfg.DB, logger)
	if err != nil {
		return fmt.Errorf("erro ao conectar no banco: %w", err)
	}
	if c.Bool("migrate") {
		if err := db.Migrate(database); err != nil {
			return fmt.Errorf("erro no AutoMigrate: %w", err)
		}
	}

	password := c.String("password")
	generated := password == ""
	if generated {
		if password, err = utils.GenerateTemporaryPassword(16); err != nil {
			return err
		}
	}

	u, created, err := user.SeedOwner(database, c.String("name"), c.String("email"), password)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email, "created": created}).Info("owner pronto")
	if generated {
		fmt.Printf("senha temporária: %s\n", password)
	}
	return nil
}
