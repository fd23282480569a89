package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"example.com/registro/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "registro",
	Short: "Registration form processor",
	Long: `registro accepts the community registration form, validates it,
appends each submission to a CSV file and answers with a confirmation page.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (YAML); REGISTRO_* environment variables override it")
}

func setVersion(v string) {
	rootCmd.Version = v
}

// loadConfig resolves the configuration against the global viper instance,
// which also holds the bound command flags.
func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper(), cfgFile)
}
