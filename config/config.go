// Package config resolves runtime settings from defaults, an optional YAML
// file, HEIC2JPG_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"heic2jpg/contracts"
)

const (
	KeyQuality        = "quality"
	KeyBackend        = "backend"
	KeyPreviewSize    = "preview.size"
	KeyLogFile        = "log.file"
	KeyLogColor       = "log.color"
	KeyDebug          = "log.debug"
	KeyHistoryEnabled = "history.enabled"
	KeyHistoryPath    = "history.path"

	EnvPrefix = "HEIC2JPG"
	appName   = "heic2jpg"
)

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyQuality, 90)
	v.SetDefault(KeyBackend, string(contracts.BackendVips))
	v.SetDefault(KeyPreviewSize, 250)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogColor, string(contracts.ColorAuto))
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyHistoryPath, DefaultHistoryPath())
}

// DefaultHistoryPath is <user cache dir>/heic2jpg/history.db, or a relative
// path when the cache dir is unknown.
func DefaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join("."+appName, "history.db")
	}
	return filepath.Join(dir, appName, "history.db")
}

// Init wires file lookup and environment binding into v. cfgFile overrides
// the search path. A missing config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer())
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func envReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// Load reads settings out of v and validates them.
func Load(v *viper.Viper) (contracts.Settings, error) {
	s := contracts.Settings{
		Quality:        v.GetInt(KeyQuality),
		Backend:        contracts.Backend(strings.ToLower(v.GetString(KeyBackend))),
		PreviewSize:    v.GetInt(KeyPreviewSize),
		LogFile:        v.GetString(KeyLogFile),
		LogColor:       contracts.ColorMode(strings.ToLower(v.GetString(KeyLogColor))),
		Debug:          v.GetBool(KeyDebug),
		HistoryEnabled: v.GetBool(KeyHistoryEnabled),
		HistoryPath:    v.GetString(KeyHistoryPath),
	}
	if err := Validate(s); err != nil {
		return contracts.Settings{}, err
	}
	return s, nil
}

func Validate(s contracts.Settings) error {
	if s.Quality < 1 || s.Quality > 100 {
		return fmt.Errorf("invalid quality %d (use 1-100)", s.Quality)
	}
	switch s.Backend {
	case contracts.BackendVips, contracts.BackendMagick:
	default:
		return fmt.Errorf("invalid backend %q (use 'vips' or 'magick')", s.Backend)
	}
	if s.PreviewSize < 16 {
		return fmt.Errorf("invalid preview size %d (minimum 16)", s.PreviewSize)
	}
	switch s.LogColor {
	case contracts.ColorAuto, contracts.ColorAlways, contracts.ColorNever:
	default:
		return fmt.Errorf("invalid log color %q (use 'auto', 'always' or 'never')", s.LogColor)
	}
	if s.HistoryEnabled && s.HistoryPath == "" {
		return errors.New("history enabled but history.path is empty")
	}
	return nil
}
