package config

import (
	"encoding/json"
	"os"
	"time"

	"babysteps/internal/flagx"
	"babysteps/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15s"
// or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL string         `json:"server_base_url"`
	LocalDBPath   string         `json:"local_db_path"`
	PollInterval  timex.Duration `json:"poll_interval"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. Missing flag means no JSON is loaded. Panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.PollInterval.Duration > 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
}
