package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".crowelogic-gateway"

// Paths holds resolved filesystem paths for gateway data.
type Paths struct {
	Base   string // ~/.crowelogic-gateway
	Config string // ~/.crowelogic-gateway/config.yaml
	Env    string // ./.env
}

// ResolvePaths computes the standard paths.
// If CROWELOGIC_GATEWAY_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("CROWELOGIC_GATEWAY_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		Env:    ".env",
	}, nil
}
