package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.td.teradata.com/sandbox/snake-ctl/internal/log"
	"gopkg.in/yaml.v2"
)

const (
	defGameSize    = 25
	defGameFrameMs = 100
	defGamePollMs  = 1
	defGameWarping = true

	defLogLevel = "info"

	// Bounds for game.size. Food placement needs the board to stay far
	// from full.
	MinGameSize = 10
	MaxGameSize = 100

	EnvVarPrefix = "SNAKE"
)

var CLIConfig *Config
var replacer = strings.NewReplacer(".", "_")

type Config struct {
	Game *Game `mapstructure:"game" yaml:"game"`
	Log  *Log  `mapstructure:"log" yaml:"log"`
}

type Game struct {
	Size    int   `mapstructure:"size" yaml:"size"`
	FrameMs int   `mapstructure:"frame_ms" yaml:"frame_ms"`
	PollMs  int   `mapstructure:"poll_ms" yaml:"poll_ms"`
	Warping bool  `mapstructure:"warping" yaml:"warping"`
	Seed    int64 `mapstructure:"seed" yaml:"seed"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Game: &Game{
			Size:    defGameSize,
			FrameMs: defGameFrameMs,
			PollMs:  defGamePollMs,
			Warping: defGameWarping,
		},
		Log: &Log{
			Level: defLogLevel,
		},
	}
}

// NewConfig loads CLIConfig from defaults, the optional YAML file and
// SNAKE_* environment variables, in increasing order of precedence.
func NewConfig(cfgFile string) error {
	v := viper.New()

	CLIConfig = DefaultConfig()

	// set default values in viper.
	// Viper needs to know if a key exists in order to override it.
	// https://github.com/spf13/viper/issues/188
	v.SetConfigType("yaml")
	if b, err := yaml.Marshal(DefaultConfig()); err != nil {
		return err
	} else {
		if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
			return err
		}
	}

	if cfgFile != "" {
		if fi, err := os.Stat(cfgFile); err == nil {
			if fi.IsDir() {
				return fmt.Errorf("config file points to a directory, not a file [%s]", cfgFile)
			}
			// overwrite values from config
			v.SetConfigFile(cfgFile)
			if err := v.MergeInConfig(); err != nil {
				return fmt.Errorf("parse config file [%s]: %w", fi.Name(), err)
			}
		} else {
			log.Warnf("No config file found [%s]: %v", cfgFile, err)
		}
	}

	// Use environment variables as final override
	v.AutomaticEnv()
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)

	// Preload environment bindings so they are processed on load
	bindVars(v, reflect.TypeOf(*CLIConfig), "")
	return v.Unmarshal(CLIConfig)
}

func bindVars(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		tag = prefix + strings.ToUpper(tag)

		if field.Type.Kind() == reflect.Struct {
			bindVars(v, field.Type, tag+".")
		} else if field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct {
			bindVars(v, field.Type.Elem(), tag+".")
		} else {
			log.Debugf("Scanning for environment variable: %s_%s -> %s", EnvVarPrefix, replacer.Replace(tag), tag)
			if err := v.BindEnv(tag); err != nil {
				log.Warnf("Unable to bind to environment variable: %s. Error: %v", tag, err)
			}
		}
	}
}

// Validate rejects settings the game loop cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.Size < MinGameSize || c.Game.Size > MaxGameSize {
		errs = append(errs, fmt.Errorf("game.size must be between %d and %d, got %d", MinGameSize, MaxGameSize, c.Game.Size))
	}
	if c.Game.PollMs < 0 {
		errs = append(errs, fmt.Errorf("game.poll_ms must not be negative, got %d", c.Game.PollMs))
	}
	if c.Game.FrameMs <= c.Game.PollMs {
		errs = append(errs, fmt.Errorf("game.frame_ms (%d) must be greater than game.poll_ms (%d)", c.Game.FrameMs, c.Game.PollMs))
	}
	if _, ok := log.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error, fatal", c.Log.Level))
	}
	return errors.Join(errs...)
}

func (g *Game) Frame() time.Duration {
	return time.Duration(g.FrameMs) * time.Millisecond
}

func (g *Game) Poll() time.Duration {
	return time.Duration(g.PollMs) * time.Millisecond
}
