/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/valpere/perevod/internal/config"
)

var version = "0.1.0"

var (
	cfgFile string
	v       = newViper()
	cfg     *config.Config
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "perevod",
	Short: "English ↔ Russian translator backed by an LLM completion endpoint",
	Long: `perevod sends text to an LLM completion endpoint and prints the translation.

English → Russian output is written in the feminine first person with an
informal register and a fixed slang glossary. Russian → English output is
natural English in a register matching the input.

Use "perevod translate --help" for translation options.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.perevod.yaml or ./perevod.yaml)")
	pf.String("endpoint", v.GetString("endpoint"), "LLM completion endpoint URL")
	pf.Duration("timeout", v.GetDuration("timeout"), "Deadline for a single attempt")
	pf.Duration("retry-delay", v.GetDuration("retry_delay"), "Pause before the second attempt after a connectivity failure")
	pf.String("host", v.GetString("host"), "Host mode for network error wording: native or browser")
	pf.String("db", v.GetString("db"), "SQLite database for history, translation memory and glossary (empty disables)")
	pf.Bool("cache", false, "Serve repeated texts from the translation memory instead of the endpoint")
	pf.String("log-level", v.GetString("log.level"), "Log level: debug, info, warn, error")
	pf.String("log-format", v.GetString("log.format"), "Log format: json or console")

	for key, flag := range map[string]string{
		"endpoint":    "endpoint",
		"timeout":     "timeout",
		"retry_delay": "retry-delay",
		"host":        "host",
		"db":          "db",
		"cache":       "cache",
		"log.level":   "log-level",
		"log.format":  "log-format",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}
}

func newViper() *viper.Viper {
	nv := viper.New()
	config.SetDefaults(nv)
	return nv
}

func initConfig() error {
	config.BindEnv(v)

	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case homeConfig() != "":
		v.SetConfigFile(homeConfig())
	default:
		v.SetConfigName("perevod")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	l, err := cfg.Log.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", zap.String("file", used))
	}
	return nil
}

// homeConfig returns $HOME/.perevod.yaml when it exists.
func homeConfig() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".perevod.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
