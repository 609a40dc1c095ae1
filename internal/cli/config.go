package cli

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/matjam/zoomview/internal/cli/cmd/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("zoomview")
		viper.SetConfigType("toml")
		if viper.GetString("config") != "" {
			viper.SetConfigFile(viper.GetString("config"))
		} else {
			viper.AddConfigPath("$HOME/.config/zoomview")
			viper.AddConfigPath("/etc/xdg/zoomview")
		}
	}

	utils.SetDefaults(viper.GetViper())

	viper.SetEnvPrefix("zoomview")
	viper.AutomaticEnv() // read environment variables that match

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		log.Debug("no config file found, using defaults")
		return
	}
	cobra.CheckErr(err)
}
