package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Dir is where the default configs live, relative to the working directory.
var Dir = "infra/config"

// MustLoad loads the default config for the given key
func MustLoad(key string, v interface{}) []byte {
	b, err := Load(filepath.Join(Dir, fmt.Sprintf("%s.json", key)), v)
	if err != nil {
		panic(fmt.Sprintf("could not load config for %s: %s", key, err.Error()))
	}
	log.Info().Str("config", key).Msg("loaded default config")
	return b
}

// Load loads the config from the given json file.
func Load(path string, v interface{}) ([]byte, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read '%s': %w", path, err)
	}
	err = json.Unmarshal(b, v)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal '%s': %w", path, err)
	}
	return b, nil
}
