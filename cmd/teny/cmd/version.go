package cmd

import (
	"os"

	"github.com/bastiangx/teny/internal/logger"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
	gh      = "https://github.com/bastiangx/teny"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current version",
	Run: func(cmd *cobra.Command, args []string) {
		lg := logger.NewWithConfig(os.Stderr, "", log.InfoLevel, false, log.TextFormatter)
		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		lg.SetStyles(styles)

		lg.Print("")
		lg.Print("[ teny ] Malagasy text checker")
		lg.Print("", "version", Version)
		lg.Print("")
		lg.Print("use -h or --help to see available commands")
		lg.Print("Github Repo", "gh", gh)
	},
}
