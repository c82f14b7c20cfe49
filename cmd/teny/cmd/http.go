package cmd

import (
	"github.com/bastiangx/teny/internal/watch"
	"github.com/bastiangx/teny/pkg/server"
	"github.com/spf13/cobra"
)

var flagAddr string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve the ops as JSON over HTTP",
	Long:  "POST /api/{op} with a JSON body, GET /api/health and /api/stats. CORS origins come from [server] cors_origins.",
	RunE:  runHTTP,
}

func runHTTP(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if cfg.Lexicon.Watch {
		if err := a.Watch(ctx, watch.DefaultDebounce); err != nil {
			return err
		}
	}

	addr := cfg.Server.HTTPAddr
	if flagAddr != "" {
		addr = flagAddr
	}
	return server.ListenAndServe(ctx, addr, a.Handler, cfg.Server.CORSOrigins)
}

func init() {
	httpCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default from config)")
}
