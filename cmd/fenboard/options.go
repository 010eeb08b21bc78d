package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/alex65536/fenboard/internal/database"
	"github.com/alex65536/fenboard/internal/diagcache"
	"github.com/alex65536/fenboard/internal/saved"
	"github.com/alex65536/fenboard/internal/util/idgen"
	"github.com/alex65536/fenboard/internal/util/slogx"
	"github.com/alex65536/fenboard/internal/webui"
)

type HTTPSOptions struct {
	Port                 int      `toml:"port"`
	CachePath            string   `toml:"cache-path"`
	ExposeInsecure       bool     `toml:"expose-insecure"`
	AllowedSecureDomains []string `toml:"allowed-secure-domains"`
}

type Options struct {
	Host       string               `toml:"host"`
	Port       int                  `toml:"port"`
	PresetBook string               `toml:"preset-book"`
	Log        slogx.Options        `toml:"log"`
	DB         database.Options     `toml:"db"`
	Cache      diagcache.Options    `toml:"cache"`
	Saved      saved.ManagerOptions `toml:"saved"`
	WebUI      webui.Options        `toml:"webui"`
	HTTPS      *HTTPSOptions        `toml:"https"`
}

func (o *Options) FillDefaults() {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}
	if o.Port == 0 {
		o.Port = 8080
	}
	if o.HTTPS != nil && o.HTTPS.Port == 0 {
		o.HTTPS.Port = 443
	}
	o.Log.FillDefaults()
	o.DB.FillDefaults()
	o.Cache.FillDefaults()
	o.Saved.FillDefaults()
	o.WebUI.FillDefaults()
}

func (o *Options) AddrWithPort() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

func (o *Options) SecureAddrWithPort() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.HTTPS.Port))
}

func (o *Options) MixSecrets(s *Secrets) error {
	sessionKey, err := hex.DecodeString(s.SessionKey)
	if err != nil {
		return fmt.Errorf("decode session key: %w", err)
	}
	csrfKey, err := hex.DecodeString(s.CSRFKey)
	if err != nil {
		return fmt.Errorf("decode csrf key: %w", err)
	}
	o.WebUI.Session.Key = sessionKey
	o.WebUI.CSRFKey = csrfKey
	return nil
}

type Secrets struct {
	SessionKey string `toml:"session-key"`
	CSRFKey    string `toml:"csrf-key"`
}

func (s *Secrets) GenerateMissing() (bool, error) {
	changed := false
	for _, key := range []*string{&s.SessionKey, &s.CSRFKey} {
		if *key != "" {
			continue
		}
		data, err := idgen.SecureKey(32)
		if err != nil {
			return false, err
		}
		*key = hex.EncodeToString(data)
		changed = true
	}
	return changed, nil
}

func loadOptions(path string) (Options, error) {
	var opts Options
	if path == "" {
		return opts, nil
	}
	rawOpts, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	if err := toml.Unmarshal(rawOpts, &opts); err != nil {
		return Options{}, fmt.Errorf("unmarshal options: %w", err)
	}
	return opts, nil
}

// loadSecrets reads the secrets file. Missing secrets are generated and
// written back, so the file is created on first start.
func loadSecrets(path string) (Secrets, error) {
	rawSecrets, err := os.ReadFile(path)
	if err != nil {
		rawSecrets = nil
		if !errors.Is(err, os.ErrNotExist) {
			return Secrets{}, fmt.Errorf("read secrets: %w", err)
		}
	}
	var secrets Secrets
	if err := toml.Unmarshal(rawSecrets, &secrets); err != nil {
		return Secrets{}, fmt.Errorf("unmarshal secrets: %w", err)
	}
	secretsChanged, err := secrets.GenerateMissing()
	if err != nil {
		return Secrets{}, fmt.Errorf("generate secrets: %w", err)
	}
	if secretsChanged {
		newRawSecrets, err := toml.Marshal(&secrets)
		if err != nil {
			return Secrets{}, fmt.Errorf("marshal secrets: %w", err)
		}
		if err := os.WriteFile(path, newRawSecrets, 0o600); err != nil {
			return Secrets{}, fmt.Errorf("write secrets: %w", err)
		}
	}
	return secrets, nil
}
