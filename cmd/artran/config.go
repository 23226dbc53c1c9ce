package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ZaguanLabs/artran"
)

// config is the resolved configuration for one command run.
type config struct {
	Provider       string
	GoogleAPIKey   string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	OllamaURL      string
	OllamaModel    string
	CacheCapacity  int
	RedisURL       string
	RedisTTL       int
	RetryMax       int
	RateLimitRPM   int
	BreakerEnabled bool
	Concurrency    int
	AMQPURL        string
	InQueue        string
	OutQueue       string
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("provider", "google")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("ollama.url", "http://localhost:11434")
	v.SetDefault("ollama.model", "llama3.1")
	v.SetDefault("cache.capacity", artran.DefaultCapacity)
	v.SetDefault("cache.redis_ttl", 0)
	v.SetDefault("retry.max", 3)
	v.SetDefault("ratelimit.rpm", 0)
	v.SetDefault("breaker.enabled", true)
	v.SetDefault("concurrency", 4)
	v.SetDefault("amqp.in_queue", "articles.translate")
	v.SetDefault("amqp.out_queue", "articles.translated")

	// ARTRAN_CACHE_CAPACITY, ARTRAN_AMQP_URL, ...
	v.SetEnvPrefix("ARTRAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional variable names used by the provider SDKs.
	_ = v.BindEnv("openai.api_key", "ARTRAN_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("google.api_key", "ARTRAN_GOOGLE_API_KEY", "GOOGLE_API_KEY")

	return v
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

// readConfigFile loads cfgFile, or .artran.yaml from the home or working
// directory when cfgFile is empty. Only an explicit file is required to exist.
func readConfigFile(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".artran")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	fmt.Fprintln(stderr, "Using config file:", v.ConfigFileUsed())
	return nil
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		Provider:       strings.ToLower(strings.TrimSpace(v.GetString("provider"))),
		GoogleAPIKey:   v.GetString("google.api_key"),
		OpenAIAPIKey:   v.GetString("openai.api_key"),
		OpenAIModel:    v.GetString("openai.model"),
		OpenAIBaseURL:  v.GetString("openai.base_url"),
		OllamaURL:      v.GetString("ollama.url"),
		OllamaModel:    v.GetString("ollama.model"),
		CacheCapacity:  v.GetInt("cache.capacity"),
		RedisURL:       v.GetString("cache.redis_url"),
		RedisTTL:       v.GetInt("cache.redis_ttl"),
		RetryMax:       v.GetInt("retry.max"),
		RateLimitRPM:   v.GetInt("ratelimit.rpm"),
		BreakerEnabled: v.GetBool("breaker.enabled"),
		Concurrency:    v.GetInt("concurrency"),
		AMQPURL:        v.GetString("amqp.url"),
		InQueue:        v.GetString("amqp.in_queue"),
		OutQueue:       v.GetString("amqp.out_queue"),
	}

	if cfg.CacheCapacity < 1 {
		return cfg, fmt.Errorf("cache.capacity must be positive, got %d", cfg.CacheCapacity)
	}
	if cfg.Concurrency < 1 {
		return cfg, fmt.Errorf("concurrency must be positive, got %d", cfg.Concurrency)
	}
	if cfg.RetryMax < 0 {
		return cfg, fmt.Errorf("retry.max must not be negative, got %d", cfg.RetryMax)
	}
	return cfg, nil
}
