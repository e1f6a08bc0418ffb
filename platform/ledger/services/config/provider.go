/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/common/services/logging"
	"github.com/spf13/viper"
)

const (
	CmdRoot = "client"
	// EnvPrefix marks the environment variables overriding configuration keys
	EnvPrefix = "LEDGER"
	// PathEnv, when set, is the only directory searched for client.yaml
	PathEnv = "LEDGER_CFG_PATH"
)

const OfficialPath = "/etc/hyperledger-labs/ledger-client"

var logger = logging.MustGetLogger("ledger.config")

var logOutput = os.Stderr

type Provider struct {
	confPath string
	Backend  *viper.Viper
}

func NewProvider(confPath string) (*Provider, error) {
	p := &Provider{confPath: confPath}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewProviderFromViper wraps an already populated backend, no file is read
func NewProviderFromViper(v *viper.Viper) *Provider {
	return &Provider{Backend: v}
}

func (p *Provider) GetDuration(key string) time.Duration {
	return p.Backend.GetDuration(key)
}

func (p *Provider) GetBool(key string) bool {
	return p.Backend.GetBool(key)
}

func (p *Provider) GetInt(key string) int {
	return p.Backend.GetInt(key)
}

func (p *Provider) GetString(key string) string {
	return p.Backend.GetString(key)
}

func (p *Provider) GetStringSlice(key string) []string {
	return p.Backend.GetStringSlice(key)
}

func (p *Provider) IsSet(key string) bool {
	return p.Backend.IsSet(key)
}

func (p *Provider) UnmarshalKey(key string, rawVal any) error {
	return unmarshal(p.Backend, key, rawVal)
}

// TranslatePath resolves a relative path against the config file's directory
func (p *Provider) TranslatePath(path string) string {
	if path == "" {
		return ""
	}
	return TranslatePath(filepath.Dir(p.Backend.ConfigFileUsed()), path)
}

func (p *Provider) ConfigFileUsed() string {
	return p.Backend.ConfigFileUsed()
}

func (p *Provider) load() error {
	p.Backend = viper.New()
	if err := p.initViper(p.Backend, CmdRoot); err != nil {
		return err
	}

	if err := p.Backend.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return errors.Errorf("could not find config file, "+
				"make sure that %s is set to a path which contains %s.yaml", PathEnv, CmdRoot)
		}
		return errors.WithMessagef(err, "error when reading %s config file", CmdRoot)
	}

	if err := p.substituteEnv(); err != nil {
		return err
	}

	logging.Init(logging.Config{
		Format:  p.Backend.GetString("logging.format"),
		LogSpec: p.Backend.GetString("logging.spec"),
		Writer:  logOutput,
	})
	logger.Debugf("configuration loaded from [%s]", p.Backend.ConfigFileUsed())
	return nil
}

// Manually override keys if the respective environment variable is set, because viper doesn't do
// that for UnmarshalKey values.
// Example: LEDGER_LEDGER_TIMEOUT sets ledger.timeout.
func (p *Provider) substituteEnv() error {
	prefix := EnvPrefix + "_"
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, prefix) || strings.HasPrefix(e, PathEnv+"=") {
			continue
		}
		name, val, _ := strings.Cut(e, "=")
		if len(val) == 0 {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(name, prefix), "_", "."))

		keys := strings.Split(key, ".")
		parent := strings.Join(keys[:len(keys)-1], ".")
		if len(keys) < 2 || !p.Backend.IsSet(parent) {
			logger.Debugf("applying %s, parent not found in %s.yaml: %s", name, CmdRoot, parent)
			p.Backend.Set(key, val)
			continue
		}
		if len(p.Backend.GetStringMap(key)) > 0 {
			logger.Warnf("skipping %s: cannot override maps", name)
			continue
		}

		root := p.Backend.GetStringMap(keys[0])
		if err := setDeepValue(root, keys, val); err != nil {
			return errors.Wrapf(err, "error when substituting %s", name)
		}
		p.Backend.Set(keys[0], root)
		logger.Debugf("applying %s", name)
	}
	return nil
}

// setDeepValue sets value at the deepest level of m, the map under keys[0]
func setDeepValue(m map[string]any, keys []string, value any) error {
	current := m
	for i := 1; i < len(keys)-1; i++ {
		next, ok := current[keys[i]].(map[string]any)
		if !ok {
			return errors.Errorf("expected map at key %s", keys[i])
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
	return nil
}

// initViper establishes the paths consulted to find the configuration: the given path,
// then either the PathEnv directory alone or the working directory and OfficialPath
func (p *Provider) initViper(v *viper.Viper, configName string) error {
	if len(p.confPath) != 0 {
		v.AddConfigPath(p.confPath)
	}

	if altPath := os.Getenv(PathEnv); altPath != "" {
		if !dirExists(altPath) {
			return errors.Errorf("%s %s does not exist", PathEnv, altPath)
		}
		v.AddConfigPath(altPath)
	} else {
		v.AddConfigPath("./")
		if dirExists(OfficialPath) {
			v.AddConfigPath(OfficialPath)
		}
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	return nil
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}

func TranslatePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
