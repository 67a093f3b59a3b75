package db

import (
	"context"
	"fmt"

	"github.com/urmzd/aqarai/pkg/aqara"
)

// Bootstrap initializes the database with a default profile if it's empty.
// Credentials present in the environment at first run are captured into
// the profile so later runs work without them.
func (db *DB) Bootstrap(ctx context.Context) error {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check profiles: %w", err)
	}

	if count > 0 {
		return nil // Already bootstrapped
	}

	env := aqara.ConfigFromEnv()
	region := env.Region
	if region == "" {
		region = aqara.DefaultRegion
	}

	profile := &Profile{
		Name:        "default",
		Region:      region,
		AppID:       env.AppID,
		AppKey:      env.AppKey,
		KeyID:       env.KeyID,
		AppSecret:   env.AppSecret,
		AccessToken: env.AccessToken,
		IsActive:    true,
	}
	if err := db.Profiles().Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to create default profile: %w", err)
	}

	return nil
}

// NeedsBootstrap returns true if the database needs initial setup.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
