package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "ats-checker"
	envPrefix = "ATS_CHECKER"
)

type Config struct {
	Scoring *ScoringConfig `mapstructure:"scoring"`
	Limits  *LimitsConfig  `mapstructure:"limits"`
	Report  *ReportConfig  `mapstructure:"report"`
	AI      *AIConfig      `mapstructure:"ai"`
}

type ScoringConfig struct {
	Weights         map[string]float64 `mapstructure:"weights"`
	KeywordsDefault int                `mapstructure:"keywords-default"`
	Matcher         string             `mapstructure:"matcher"`
	ExtraSkills     []string           `mapstructure:"extra-skills"`
}

type LimitsConfig struct {
	TopTerms           int `mapstructure:"top-terms"`
	MissingCap         int `mapstructure:"missing-cap"`
	ScoreDenominator   int `mapstructure:"score-denominator"`
	MaxRecommendations int `mapstructure:"max-recommendations"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"`
}

type AIConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Provider     string        `mapstructure:"provider"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Instructions string        `mapstructure:"instructions"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-checker scores résumés for applicant tracking system compatibility",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-checker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only the analyze command reads the configuration.
	if analyzeCmd.CalledAs() == "" {
		return
	}

	// We can't proceed if the config file parsed with error.
	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		log.Fatal(err)
	}
}

// readConfig wires environment variables and reads the config file. A missing
// default config file is fine; an explicitly given one must exist.
func readConfig(v *viper.Viper, path string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(app)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	return nil
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	return config, nil
}
