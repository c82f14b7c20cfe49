package cmd

import (
	"os"

	"github.com/bastiangx/teny/internal/cli"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var flagLimit int

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive prompt for checking text and trying every op",
	RunE: func(cmd *cobra.Command, args []string) error {
		sigHandler()
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		log.SetReportTimestamp(false)
		limit := cfg.CLI.DefaultLimit
		if flagLimit > 0 {
			limit = flagLimit
		}
		printer := cli.NewPrinter(cmd.OutOrStdout(), cfg.CLI.Color)
		return cli.NewInputHandler(a.Handler, os.Stdin, printer, limit).Start()
	},
}

func init() {
	replCmd.Flags().IntVarP(&flagLimit, "limit", "l", 0, "results per completion or prediction")
}
