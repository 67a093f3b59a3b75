package aqara

import "os"

// Config holds the vendor app identity used to sign every outbound request.
// It is immutable after construction.
type Config struct {
	AppID       string
	AppKey      string
	KeyID       string
	AppSecret   string
	Region      string
	AccessToken string
}

// DefaultRegion is used when Region is unset or not in the endpoint table.
const DefaultRegion = "usa"

// regionEndpoints maps a region code to the vendor's base URL for it.
var regionEndpoints = map[string]string{
	"cn":  "https://open-cn.aqara.com",
	"usa": "https://open-usa.aqara.com",
	"eu":  "https://open-ger.aqara.com",
	"kr":  "https://open-kr.aqara.com",
	"ru":  "https://open-ru.aqara.com",
	"sg":  "https://open-sg.aqara.com",
}

// apiPath is the single RPC endpoint path shared by every operation.
const apiPath = "/v3.0/open/api"

// BaseURL returns the regional endpoint, falling back to the default
// region for unset or unrecognized region codes.
func (c Config) BaseURL() string {
	if url, ok := regionEndpoints[c.Region]; ok {
		return url
	}
	return regionEndpoints[DefaultRegion]
}

// Validate checks that all mandatory credentials are present. The returned
// error names every missing field so a misconfigured deployment can be
// fixed in one pass.
func (c Config) Validate() error {
	var missing []string
	if c.AppID == "" {
		missing = append(missing, "app id")
	}
	if c.AppKey == "" {
		missing = append(missing, "app key")
	}
	if c.KeyID == "" {
		missing = append(missing, "key id")
	}
	if c.AppSecret == "" {
		missing = append(missing, "app secret")
	}
	if len(missing) > 0 {
		return missingConfigError(missing)
	}
	return nil
}

// ConfigFromEnv reads the vendor credentials from the process environment.
// Empty variables are left unset; call Validate before use.
func ConfigFromEnv() Config {
	return Config{
		AppID:       os.Getenv("AQARA_APP_ID"),
		AppKey:      os.Getenv("AQARA_APP_KEY"),
		KeyID:       os.Getenv("AQARA_KEY_ID"),
		AppSecret:   os.Getenv("AQARA_APP_SECRET"),
		Region:      os.Getenv("AQARA_REGION"),
		AccessToken: os.Getenv("AQARA_ACCESS_TOKEN"),
	}
}

// Merge fills unset fields of c from fallback, returning the result.
// Environment values win over profile values in config resolution.
func (c Config) Merge(fallback Config) Config {
	if c.AppID == "" {
		c.AppID = fallback.AppID
	}
	if c.AppKey == "" {
		c.AppKey = fallback.AppKey
	}
	if c.KeyID == "" {
		c.KeyID = fallback.KeyID
	}
	if c.AppSecret == "" {
		c.AppSecret = fallback.AppSecret
	}
	if c.Region == "" {
		c.Region = fallback.Region
	}
	if c.AccessToken == "" {
		c.AccessToken = fallback.AccessToken
	}
	return c
}
