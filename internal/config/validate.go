package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be positive (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.ResetTokenTTL <= 0 {
		return fmt.Errorf("auth.reset_token_ttl must be positive (got %v)", c.Auth.ResetTokenTTL)
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if c.Notify.SendTimeout <= 0 {
		return fmt.Errorf("notify.send_timeout must be positive (got %v)", c.Notify.SendTimeout)
	}
	if c.Notify.FeedLimit <= 0 {
		return fmt.Errorf("notify.feed_limit must be > 0 (got %d)", c.Notify.FeedLimit)
	}

	return nil
}

func (c *CatalogConfig) validate() error {
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be > 0 (got %d)", c.DefaultPageSize)
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("max_page_size must be >= default_page_size (got %d < %d)", c.MaxPageSize, c.DefaultPageSize)
	}
	if c.TrendingGenres <= 0 {
		return fmt.Errorf("trending_genres must be > 0 (got %d)", c.TrendingGenres)
	}
	return nil
}
