package env

import (
	"io/fs"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// LoadDotEnv fills unset env vars from .env files. Missing files are fine,
// vars that are already set are never overridden.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "Failed to load .env file")
	}

	return nil
}
