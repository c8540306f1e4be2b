package main

import (
	"github.com/seu-usuario/cobrancas-api/internal/infrastructure/postgres"
	"github.com/seu-usuario/cobrancas-api/pkg/config"
	"github.com/seu-usuario/cobrancas-api/pkg/logger"
)

// Aplica as migrações embutidas no banco configurado e termina.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migração do banco")
	}
	log.Info().Msg("migrações aplicadas")
}
