package dotenv

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
)

// LoadDotEnvs loads .env from the repository root into the process
// environment. Values already set in the environment win over file values.
// A missing .env file is not an error so that CI and production, which
// configure through real env vars, work unchanged.
func LoadDotEnvs() error {
	path, ok := repoRootDotEnv()
	if !ok {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// repoRootDotEnv resolves the .env path relative to this source file so that
// tests in nested packages pick up the same file as cmd entry points.
func repoRootDotEnv() (string, bool) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", false
	}
	return filepath.Join(filepath.Dir(file), "..", "..", ".env"), true
}
