package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/matjam/zoomview"
	"github.com/matjam/zoomview/internal/cli/cmd"
	"github.com/matjam/zoomview/internal/cli/cmd/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zoomview [image]",
	Short: "A pan and zoom image viewer",
	Long: `Zoomview shows an image fitted to its window. Double click to zoom in,
drag to pan, swipe to fling, and double click again to zoom back out.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(c *cobra.Command, args []string) {
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
			log.SetReportCaller(true)
		}
	},
	Run: func(c *cobra.Command, args []string) {
		if v, err := c.Flags().GetBool("installconfig"); err == nil && v {
			utils.InstallDefaultConfig()
			return
		}

		if v, err := c.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			log.Infof("All settings:")
			utils.PrintJSONColored(viper.AllSettings())
			return
		}

		if v, err := c.Flags().GetBool("version"); err == nil && v {
			printVersion()
			return
		}

		image := viper.GetString("image")
		if len(args) == 1 {
			image = args[0]
		}
		if image == "" {
			log.Fatal("No image given; pass one as an argument or set `image` in the config")
		}

		background, _ := c.Flags().GetBool("background")
		cmd.StartViewer(utils.CanonicalPath(image), background)
	},
}

func printVersion() {
	babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
	log.Infof("%v version %v",
		babyBlue.Render("zoomview"),
		green.Render(strings.Trim(zoomview.Version, "\n\r ")))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	RegisterFlags(rootCmd)

	rootCmd.AddCommand(
		cmd.NewStatusCmd(),
		cmd.NewToggleCmd(),
		cmd.NewFlingCmd(),
		cmd.NewStopCmd(),
		cmd.NewGenManCmd(rootCmd),
	)
}
