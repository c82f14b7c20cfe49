package cmd

import (
	"os"

	"github.com/bastiangx/teny/internal/watch"
	"github.com/bastiangx/teny/pkg/config"
	"github.com/bastiangx/teny/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var flagWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the msgpack IPC server on stdin/stdout",
	Long:  "Reads msgpack requests from stdin and writes one response per request to stdout. Logs go to stderr.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	sigHandler()
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if flagWatch || cfg.Lexicon.Watch {
		if err := a.Watch(cmd.Context(), watch.DefaultDebounce); err != nil {
			return err
		}
	}
	showStartupInfo(configPath)
	return server.NewServer(a.Handler).Start()
}

// showStartupInfo writes basic process info to stderr.
func showStartupInfo(path string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(path))
	log.Info("status: ready")
}

func init() {
	serveCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload the lexicon when its files change")
}
