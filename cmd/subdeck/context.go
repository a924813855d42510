package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"subdeck/internal/config"
	"subdeck/internal/logging"
	"subdeck/internal/meaning"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// loggerValue returns the configured logger, or a console logger at info
// level when the logging section cannot be honoured.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.NewFromConfig(nil)
			logger.Warn("falling back to default logging", logging.Error(err))
		}
		c.logger = logger
	})
	return c.logger
}

// loadDictionary reads the meaning dictionary at path. A missing file is
// reported and treated as an empty dictionary.
func (c *commandContext) loadDictionary(path string) (meaning.Dictionary, error) {
	dict, err := meaning.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.WarnWithContext(c.loggerValue(), "meaning dictionary not found", "dictionary_missing",
			logging.String(logging.FieldFile, path),
			logging.String(logging.FieldErrorHint, "set paths.dictionary_path or "+config.EnvDictionary),
			logging.String(logging.FieldImpact, "word cards will have no meanings"))
		return meaning.Empty(), nil
	}
	if err != nil {
		return meaning.Dictionary{}, fmt.Errorf("load dictionary: %w", err)
	}
	return dict, nil
}

// dictionaryPath prefers an explicit flag over the configured path.
func (c *commandContext) dictionaryPath(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return config.ExpandPath(v)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Paths.DictionaryPath, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
