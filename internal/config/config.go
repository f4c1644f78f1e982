// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/curioswitch/go-curiostack/config"
)

var (
	// ErrMissingAPIKey is returned when the credential for the configured
	// provider is not set in the environment.
	ErrMissingAPIKey = errors.New("config: API key not found, set it in your .env file")

	// ErrUnknownProvider is returned for an unsupported llm.provider.
	ErrUnknownProvider = errors.New("config: unknown llm provider")
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Recipe struct {
	// File is the path of the stored recipe JSON.
	File string `koanf:"file"`
}

type LLM struct {
	// Provider is the hosted model provider, gemini or openai.
	Provider string `koanf:"provider"`

	// Model is the model name for the provider.
	Model string `koanf:"model"`

	// APIVersion is the Gemini API version.
	APIVersion string `koanf:"version"`

	// PromptFile is the path of the system prompt text.
	PromptFile string `koanf:"prompt"`

	// Temperature is the sampling temperature.
	Temperature float32 `koanf:"temperature"`

	// ReuseSession keeps one chat per recipe instead of one per question.
	ReuseSession bool `koanf:"reuse"`

	// APIKey is read from the provider's environment variable, never from
	// configuration files.
	APIKey string `koanf:"-"`
}

type Scrape struct {
	// UserAgent is sent when fetching recipe pages.
	UserAgent string `koanf:"agent"`
}

type Typing struct {
	// DelayMultiplier scales typing delays, 0 disables them.
	DelayMultiplier float64 `koanf:"delay"`
}

type Config struct {
	Recipe Recipe `koanf:"recipe"`
	LLM    LLM    `koanf:"llm"`
	Scrape Scrape `koanf:"scrape"`
	Typing Typing `koanf:"typing"`

	config.Common
}

// Load resolves conf from confFiles and the environment, then reads the
// provider credential.
func Load(conf *Config, confFiles fs.FS) error {
	if err := config.Load(conf, confFiles); err != nil {
		return err
	}
	return conf.loadAPIKey()
}

// APIKeyEnv returns the environment variable holding the credential for
// provider.
func APIKeyEnv(provider string) (string, error) {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY", nil
	case ProviderOpenAI:
		return "OPENAI_API_KEY", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}

func (c *Config) loadAPIKey() error {
	name, err := APIKeyEnv(c.LLM.Provider)
	if err != nil {
		return err
	}
	c.LLM.APIKey = os.Getenv(name)
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: %s", ErrMissingAPIKey, name)
	}
	return nil
}
