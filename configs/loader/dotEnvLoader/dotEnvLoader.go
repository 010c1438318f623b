package dotEnvLoader

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvLoader reads variables from a .env file when one is present and
// merges them with the process environment. Process variables win.
type DotEnvLoader struct {
	Path string
}

func (l DotEnvLoader) Load() (map[string]string, error) {
	envs := make(map[string]string)

	path := l.Path
	if path == "" {
		path = ".env"
	}

	fileEnvs, err := godotenv.Read(path)
	if err == nil {
		for k, v := range fileEnvs {
			envs[k] = v
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		envs[parts[0]] = parts[1]
	}

	return envs, nil
}
