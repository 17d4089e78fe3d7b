package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KromaEnergia/api-crm/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// secretsAPI é o subconjunto do Secrets Manager usado aqui.
type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func initSecretsClient(ctx context.Context) (secretsAPI, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// retrieveCredentials usa DB_USERNAME/DB_PASSWORD quando definidos;
// senão busca o segredo DB_SECRET_ID no Secrets Manager.
func retrieveCredentials(ctx context.Context, cfg config.DBConfig, client secretsAPI) (string, string, error) {
	if cfg.Username != "" && cfg.Password != "" {
		return cfg.Username, cfg.Password, nil
	}
	if cfg.SecretID == "" {
		return "", "", errors.New("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	if client == nil {
		var err error
		if client, err = initSecretsClient(ctx); err != nil {
			return "", "", err
		}
	}

	input := &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.SecretID),
		VersionStage: aws.String("AWSCURRENT"),
	}
	result, err := client.GetSecretValue(ctx, input)
	if err != nil {
		return "", "", fmt.Errorf("get secret %s: %w", cfg.SecretID, err)
	}
	if result.SecretString == nil {
		return "", "", fmt.Errorf("secret %s sem SecretString", cfg.SecretID)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("decode secret %s: %w", cfg.SecretID, err)
	}
	return secret.Username, secret.Password, nil
}
