package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Cycles  []cycleSchema `toml:"cycles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported history schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type cycleSchema struct {
	ID         string          `toml:"id"`
	Trigger    string          `toml:"trigger"`
	Mode       string          `toml:"mode"`
	StartedAt  string          `toml:"started_at"`
	FinishedAt string          `toml:"finished_at"`
	Outcome    string          `toml:"outcome"`
	Reason     string          `toml:"reason,omitempty"`
	Generated  []string        `toml:"generated"`
	Published  []string        `toml:"published"`
	Failures   []failureSchema `toml:"failures,omitempty"`
}

type failureSchema struct {
	Topic  string `toml:"topic"`
	Reason string `toml:"reason"`
}
