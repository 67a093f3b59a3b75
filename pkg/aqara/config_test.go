package aqara

import (
	"errors"
	"strings"
	"testing"
)

func TestBaseURL_RegionTable(t *testing.T) {
	regions := map[string]string{
		"cn":  "https://open-cn.aqara.com",
		"usa": "https://open-usa.aqara.com",
		"eu":  "https://open-ger.aqara.com",
		"kr":  "https://open-kr.aqara.com",
		"ru":  "https://open-ru.aqara.com",
		"sg":  "https://open-sg.aqara.com",
	}

	for region, want := range regions {
		cfg := Config{Region: region}
		if got := cfg.BaseURL(); got != want {
			t.Errorf("region %s: got %s want %s", region, got, want)
		}
	}
}

func TestBaseURL_UnknownFallsBackToUSA(t *testing.T) {
	for _, region := range []string{"", "mars", "US"} {
		cfg := Config{Region: region}
		if got := cfg.BaseURL(); got != "https://open-usa.aqara.com" {
			t.Errorf("region %q: expected usa fallback, got %s", region, got)
		}
	}
}

func TestValidate_Complete(t *testing.T) {
	if err := testConfig().Validate(); err != nil {
		t.Errorf("complete config should validate, got: %v", err)
	}
}

func TestValidate_ReportsExactlyMissingFields(t *testing.T) {
	cfg := testConfig()
	cfg.AppKey = ""
	cfg.AppSecret = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
	if !errors.Is(err, ErrMissingConfig) {
		t.Errorf("expected ErrMissingConfig, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{"app key", "app secret"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error should name %q: %s", want, msg)
		}
	}
	for _, absent := range []string{"app id", "key id"} {
		if strings.Contains(msg, absent) {
			t.Errorf("error should not name present field %q: %s", absent, msg)
		}
	}
}

func TestValidate_SingleMissingField(t *testing.T) {
	cfg := testConfig()
	cfg.KeyID = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "key id") {
		t.Errorf("expected 'key id' in %q", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("AQARA_APP_ID", "envapp")
	t.Setenv("AQARA_APP_KEY", "envkey")
	t.Setenv("AQARA_KEY_ID", "envkeyid")
	t.Setenv("AQARA_APP_SECRET", "envsecret")
	t.Setenv("AQARA_REGION", "eu")
	t.Setenv("AQARA_ACCESS_TOKEN", "envtoken")

	cfg := ConfigFromEnv()
	if cfg.AppID != "envapp" || cfg.AppKey != "envkey" || cfg.KeyID != "envkeyid" ||
		cfg.AppSecret != "envsecret" || cfg.Region != "eu" || cfg.AccessToken != "envtoken" {
		t.Errorf("unexpected config from env: %+v", cfg)
	}
}

func TestMerge_EnvWins(t *testing.T) {
	env := Config{AppID: "envapp", Region: "eu"}
	profile := Config{AppID: "dbapp", AppKey: "dbkey", KeyID: "dbkeyid", AppSecret: "dbsecret", Region: "cn"}

	merged := env.Merge(profile)

	if merged.AppID != "envapp" {
		t.Errorf("env value should win, got %q", merged.AppID)
	}
	if merged.Region != "eu" {
		t.Errorf("env region should win, got %q", merged.Region)
	}
	if merged.AppKey != "dbkey" || merged.KeyID != "dbkeyid" || merged.AppSecret != "dbsecret" {
		t.Errorf("unset fields should fall back to profile: %+v", merged)
	}
}
