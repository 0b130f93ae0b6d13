package app

import (
	"fmt"

	_ "github.com/joho/godotenv/autoload"

	"github.com/mkarpenko/go-tasklist/internal/config"
)

const minSigningKeyLen = 32

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}

	if len(cfg.JWT.SigningKey) < minSigningKeyLen {
		err = fmt.Errorf("JWT_SIGNING_KEY must be at least %d characters", minSigningKeyLen)
		globalLogger.Error().
			Err(err).
			Msg("invalid signing key")
		panic(err)
	}

	globalLogger.Info().
		Str("env", cfg.Env).
		Msg("read env")

	config.SetGlobal(cfg)
}
