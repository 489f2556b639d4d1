package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prepdeck/prepdeck/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "prepdeck",
	Short: "Timed-assessment sessions in the terminal",
	Long: `Prepdeck runs timed quiz sessions with durable state: a session
survives process restarts within the inactivity window, counts down its
time limit, and is abandoned or auto-completed by a background monitor.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/prepdeck/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/prepdeck")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PREPDECK")
	// Replace dots with underscores for nested keys in env vars
	// e.g., PREPDECK_MONITOR_TICK_INTERVAL_SECONDS for monitor.tick_interval_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
