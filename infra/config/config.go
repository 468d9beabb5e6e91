package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

const path = "infra/config"

// MustLoad loads the config for the given key on top of whatever defaults
// the target already carries.
func MustLoad(key string, v interface{}) []byte {

	b, err := os.ReadFile(fmt.Sprintf("%s/%s.json", path, key))
	if err != nil {
		panic(fmt.Sprintf("could not load config for %s: %s", key, err.Error()))
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		panic(fmt.Sprintf("could not unmarshal the config for %s: %s", key, err.Error()))
	}

	log.Info().Str("run", key).Msg("loaded default config")

	return b

}

// MustLoadFile loads the config from an explicit file path.
func MustLoadFile(file string, v interface{}) []byte {

	b, err := os.ReadFile(file)
	if err != nil {
		panic(fmt.Sprintf("could not load config from %s: %s", file, err.Error()))
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		panic(fmt.Sprintf("could not unmarshal the config from %s: %s", file, err.Error()))
	}

	log.Info().Str("file", file).Msg("loaded config")

	return b

}
