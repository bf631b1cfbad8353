package env

import (
	"os"
	"strings"

	"github.com/10imaging/serving/internal/envvar"
)

// Environment distinguishes development from production logging behavior.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// FromEnv reads the environment from SERVING_ENV, defaulting to development.
func FromEnv() Environment {
	switch strings.ToLower(os.Getenv(envvar.ServingEnv)) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}
