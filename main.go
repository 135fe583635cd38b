package main

import (
	"fmt"
	"os"

	"github.com/rohanthewiz/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"thelab/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "thelab",
	Short: "THE LAB user registration",
	Long: `thelab serves the THE LAB sign-up form.

The same form engine backs every front end:
- serve: the web page and its JSON API
- tui: an interactive terminal form
- validate: a one-shot check of values passed as flags

Settings come from flags, THELAB_* environment variables or a config file.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.Bind(viper.GetViper())
	if err := config.ReadFile(viper.GetViper(), cfgFile); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func addPersistentFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("account-url", "", "account service base URL")
	pf.String("account-encoding", "", "request encoding: json or msgpack")
	pf.Duration("submit-timeout", 0, "account request timeout, 0 disables")
	pf.String("variant", "", "form variant: username or fullname")
	pf.Bool("warn-on-conflict", false, "also notify duplicate-account errors")
	pf.Int("rate-limit", 0, "requests per minute per visitor, 0 disables")
	pf.String("log-level", "", "debug, info, warn or error")

	_ = viper.BindPFlag(config.KeyAccountURL, pf.Lookup("account-url"))
	_ = viper.BindPFlag(config.KeyAccountEncoding, pf.Lookup("account-encoding"))
	_ = viper.BindPFlag(config.KeySubmitTimeout, pf.Lookup("submit-timeout"))
	_ = viper.BindPFlag(config.KeyFormVariant, pf.Lookup("variant"))
	_ = viper.BindPFlag(config.KeyWarnOnConflict, pf.Lookup("warn-on-conflict"))
	_ = viper.BindPFlag(config.KeyRateLimit, pf.Lookup("rate-limit"))
	_ = viper.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
}

func registerCommands() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(validateCmd())
}

// loadConfig reads the merged settings and applies the log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger.SetLogLevel(cfg.LogLevel)
	return cfg, nil
}
