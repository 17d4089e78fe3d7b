package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN monta a string de conexão do postgres.
func DSN(host string, port uint, dbname, username, password string, sslDisable bool) string {
	var sslMode string
	if sslDisable {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", host, username, password, dbname, port, sslMode)
}

// gormWriter manda as linhas do gorm para o logrus.
type gormWriter struct {
	log logrus.FieldLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.WithField("module", "gorm").Errorf(format, args...)
}

// NewGormLogger só registra erros de SQL. Registro não encontrado vira 404
// nos handlers e não é logado.
func NewGormLogger(log logrus.FieldLogger) logger.Interface {
	return logger.New(gormWriter{log: log}, logger.Config{
		Colorful:                  false,
		LogLevel:                  logger.Error,
		SlowThreshold:             time.Second,
		IgnoreRecordNotFoundError: true,
	})
}

// NewGormConfig é a configuração comum a produção e testes.
// TranslateError converte violação de unique em gorm.ErrDuplicatedKey.
func NewGormConfig(log logrus.FieldLogger) *gorm.Config {
	return &gorm.Config{
		Logger:         NewGormLogger(log),
		TranslateError: true,
	}
}

// Open abre a conexão com o dialector informado e instala o plugin de tracing.
func Open(dialector gorm.Dialector, log logrus.FieldLogger) (*gorm.DB, error) {
	database, err := gorm.Open(dialector, NewGormConfig(log))
	if err != nil {
		return nil, err
	}
	if err := database.Use(otelgorm.NewPlugin()); err != nil {
		return nil, fmt.Errorf("otelgorm plugin: %w", err)
	}
	return database, nil
}

func ConnectDataBase(port uint, host, dbname, username, password string, sslDisable bool, log logrus.FieldLogger) (*gorm.DB, error) {
	return Open(postgres.Open(DSN(host, port, dbname, username, password, sslDisable)), log)
}
