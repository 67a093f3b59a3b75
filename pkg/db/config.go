package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/urmzd/aqarai/pkg/aqara"
)

// Config converts a stored profile into a client configuration.
func (p *Profile) Config() aqara.Config {
	return aqara.Config{
		AppID:       p.AppID,
		AppKey:      p.AppKey,
		KeyID:       p.KeyID,
		AppSecret:   p.AppSecret,
		Region:      p.Region,
		AccessToken: p.AccessToken,
	}
}

// ActiveConfig resolves the runtime configuration: environment variables
// take precedence, with the active profile filling whatever they leave
// unset. The result is not validated here; mains do that so the failure
// is startup-fatal with a complete list of missing credentials.
func (db *DB) ActiveConfig(ctx context.Context) (aqara.Config, error) {
	env := aqara.ConfigFromEnv()

	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return env, nil
		}
		return aqara.Config{}, fmt.Errorf("failed to get active profile: %w", err)
	}

	return env.Merge(profile.Config()), nil
}
