package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.toml")
	s, err := loadSecrets(path)
	if err != nil {
		t.Fatalf("load secrets: %v", err)
	}
	if len(s.SessionKey) != 64 || len(s.CSRFKey) != 64 {
		t.Fatalf("bad generated keys: %+v", s)
	}
	if s.SessionKey == s.CSRFKey {
		t.Fatalf("keys must differ")
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("secrets file not written: %v", err)
	}
	if mode := st.Mode().Perm(); mode != 0o600 {
		t.Fatalf("bad mode: expected = %v, got = %v", os.FileMode(0o600), mode)
	}

	again, err := loadSecrets(path)
	if err != nil {
		t.Fatalf("load secrets again: %v", err)
	}
	if again != s {
		t.Fatalf("secrets changed: expected = %+v, got = %+v", s, again)
	}

	var o Options
	if err := o.MixSecrets(&s); err != nil {
		t.Fatalf("mix secrets: %v", err)
	}
	if len(o.WebUI.CSRFKey) != 32 || len(o.WebUI.Session.Key) != 32 {
		t.Fatalf("bad key length")
	}
}

func TestMixSecretsBadHex(t *testing.T) {
	var o Options
	if err := o.MixSecrets(&Secrets{SessionKey: "zz", CSRFKey: "00"}); err == nil {
		t.Fatalf("bad hex must be rejected")
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.toml")
	data := `
host = "0.0.0.0"
port = 9000
preset-book = "book.txt"

[log]
level = "debug"

[cache]
ttl = "1h"

[webui]
grid-square-size = 48

[https]
cache-path = "certs"
allowed-secure-domains = ["example.com"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	o, err := loadOptions(path)
	if err != nil {
		t.Fatalf("load options: %v", err)
	}
	o.FillDefaults()
	if got := o.AddrWithPort(); got != "0.0.0.0:9000" {
		t.Fatalf("expected = %v, got = %v", "0.0.0.0:9000", got)
	}
	if got := o.SecureAddrWithPort(); got != "0.0.0.0:443" {
		t.Fatalf("expected = %v, got = %v", "0.0.0.0:443", got)
	}
	if o.PresetBook != "book.txt" || o.Log.Level != "debug" || o.Log.Format != "text" {
		t.Fatalf("bad options: %+v", o)
	}
	if o.Cache.TTL != time.Hour {
		t.Fatalf("expected = %v, got = %v", time.Hour, o.Cache.TTL)
	}
	if o.WebUI.GridSquareSize != 48 {
		t.Fatalf("expected = %v, got = %v", 48, o.WebUI.GridSquareSize)
	}

	def, err := loadOptions("")
	if err != nil {
		t.Fatalf("load empty options: %v", err)
	}
	def.FillDefaults()
	if got := def.AddrWithPort(); got != "127.0.0.1:8080" {
		t.Fatalf("expected = %v, got = %v", "127.0.0.1:8080", got)
	}
	if def.HTTPS != nil {
		t.Fatalf("https must be disabled by default")
	}
}

func TestNewServers(t *testing.T) {
	o := Options{HTTPS: &HTTPSOptions{AllowedSecureDomains: []string{"example.com"}}}
	o.FillDefaults()
	if _, err := newServers(t.Context(), nil, &o, nil); err == nil {
		t.Fatalf("missing cache path must be rejected")
	}
	o.HTTPS.CachePath = t.TempDir()
	s, err := newServers(t.Context(), nil, &o, nil)
	if err != nil {
		t.Fatalf("new servers: %v", err)
	}
	if s.insecure != nil || s.secure == nil {
		t.Fatalf("only the secure server expected")
	}
	o.HTTPS.ExposeInsecure = true
	s, err = newServers(t.Context(), nil, &o, nil)
	if err != nil {
		t.Fatalf("new servers: %v", err)
	}
	if s.insecure == nil || s.secure == nil {
		t.Fatalf("both servers expected")
	}
}
