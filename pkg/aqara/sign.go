package aqara

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newNonce returns a single-use 128-bit random value, hex encoded.
func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// buildSignString assembles the canonical string the signature is computed
// over. Field order is part of the contract with the remote service and
// must not change: accesstoken (when set), appid, keyid, nonce, time.
// All values except the timestamp are lower-cased.
func buildSignString(cfg Config, nonce string, timestamp int64) string {
	var parts []string
	if cfg.AccessToken != "" {
		parts = append(parts, "accesstoken="+strings.ToLower(cfg.AccessToken))
	}
	parts = append(parts,
		"appid="+strings.ToLower(cfg.AppID),
		"keyid="+strings.ToLower(cfg.KeyID),
		"nonce="+strings.ToLower(nonce),
		"time="+strconv.FormatInt(timestamp, 10),
	)
	return strings.Join(parts, "&")
}

// sign computes the hex-encoded HMAC-SHA256 of the sign-string keyed by the
// app secret.
func sign(cfg Config, nonce string, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(cfg.AppSecret))
	mac.Write([]byte(buildSignString(cfg, nonce, timestamp)))
	return hex.EncodeToString(mac.Sum(nil))
}

// signHeaders attaches the vendor authentication headers to req. A fresh
// nonce and timestamp are generated per call; signing is pure computation
// and never fails.
func signHeaders(cfg Config, req *http.Request) {
	nonce := newNonce()
	timestamp := time.Now().UnixMilli()

	req.Header.Set("Appid", cfg.AppID)
	req.Header.Set("Keyid", cfg.KeyID)
	req.Header.Set("Nonce", nonce)
	req.Header.Set("Time", strconv.FormatInt(timestamp, 10))
	req.Header.Set("Sign", sign(cfg, nonce, timestamp))
	req.Header.Set("Lang", "en")
	if cfg.AccessToken != "" {
		req.Header.Set("Accesstoken", cfg.AccessToken)
	}
	req.Header.Set("Content-Type", "application/json")
}
