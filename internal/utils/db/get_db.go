package db

import (
	"context"

	"github.com/KromaEnergia/api-crm/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetDB resolve as credenciais e conecta no postgres.
func GetDB(ctx context.Context, cfg config.DBConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	return ConnectDataBase(cfg.Port, cfg.Host, cfg.Name, username, password, cfg.SSLDisable, log)
}
