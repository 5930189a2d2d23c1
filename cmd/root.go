package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rizky28eka/portfolio/internal/config"
	"github.com/Rizky28eka/portfolio/internal/logger"
)

var (
	cfgFile    string
	showDrafts bool
	appConfig  config.Config
	log        *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "portfolio - personal portfolio and blog site generator",
	Long: `portfolio takes markdown content with typed front-matter
(blog posts, projects, work history, education), validates it against
the collection schemas, and generates a static site driven by the
site.yaml configuration registry.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&showDrafts, "drafts", false, "include draft entries (preview mode)")
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()

	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "public")
	v.SetDefault("siteFile", "site.yaml")
	v.SetDefault("baseURL", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("preview", false)
	v.SetDefault("minify", true)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
			// No config file is fine; defaults and env cover everything.
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// The flag is an explicit gate on top of whatever the config says;
	// drafts are never exposed by default.
	if showDrafts {
		appConfig.Preview = true
	}

	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log = logger.New(appConfig.LogLevel)

	return nil
}
