// Package cmd holds the teny subcommands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/teny/internal/app"
	"github.com/bastiangx/teny/internal/cli"
	"github.com/bastiangx/teny/internal/logger"
	"github.com/bastiangx/teny/internal/utils"
	"github.com/bastiangx/teny/pkg/config"
	"github.com/bastiangx/teny/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	configPath string

	flagConfig      string
	flagDebug       bool
	flagJSON        bool
	flagNoColor     bool
	flagWords       string
	flagDefinitions string
	flagLexiconDB   string
	flagModel       string
	flagModelDB     string
	flagRedis       string
)

var rootCmd = &cobra.Command{
	Use:           "teny",
	Short:         "teny - Malagasy text checker",
	Long:          "Spelling, rules, sentence structure, lemmas and word prediction for Malagasy text.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Setup(flagDebug)
		var err error
		cfg, configPath, err = config.LoadConfigWithPriority(flagConfig)
		if err != nil {
			return err
		}
		applyFlags(cfg)
		log.Debugf("Using config: %s", config.GetActiveConfigPath(configPath))
		return nil
	},
}

// applyFlags overrides config paths with flags, then resolves relative paths
// against the working dir, the executable dir and the config data dir.
func applyFlags(c *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Lexicon.WordListPath, flagWords)
	set(&c.Lexicon.DefinitionsPath, flagDefinitions)
	set(&c.Lexicon.SnapshotPath, flagLexiconDB)
	set(&c.Model.SnapshotPath, flagModel)
	set(&c.Model.DBPath, flagModelDB)
	set(&c.Lexicon.RedisAddr, flagRedis)
	if flagNoColor {
		c.CLI.Color = false
	}

	pr, err := utils.NewPathResolver()
	if err != nil {
		log.Debugf("Path resolver unavailable: %v", err)
		return
	}
	for _, p := range []*string{
		&c.Lexicon.WordListPath, &c.Lexicon.DefinitionsPath, &c.Lexicon.SnapshotPath,
		&c.Model.SnapshotPath, &c.Model.DBPath,
	} {
		*p = pr.ResolveFile(*p)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// sigHandler exits on the first SIGINT or SIGTERM.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func newApp(ctx context.Context) (*app.App, error) {
	return app.New(ctx, cfg)
}

// runOp builds the app, runs one request and prints its result.
func runOp(cmd *cobra.Command, req server.Request) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Handler.Handle(req)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), result)
}

func printResult(w io.Writer, result any) error {
	if flagJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	cli.NewPrinter(w, cfg.CLI.Color).Print(result)
	return nil
}

// textArg joins args, or reads stdin when there are none.
func textArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error(err.Error())
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to config.toml")
	pf.BoolVarP(&flagDebug, "debug", "d", false, "debug logging")
	pf.BoolVar(&flagJSON, "json", false, "print results as JSON")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	pf.StringVar(&flagWords, "words", "", "word list file, one word per line")
	pf.StringVar(&flagDefinitions, "definitions", "", "JSON definitions file")
	pf.StringVar(&flagLexiconDB, "lexicon-db", "", "bbolt database holding a lexicon snapshot")
	pf.StringVar(&flagModel, "model", "", "n-gram model snapshot file")
	pf.StringVar(&flagModelDB, "model-db", "", "bbolt database holding the n-gram model")
	pf.StringVar(&flagRedis, "redis", "", "Redis address for shared user words")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(correctCmd)
	rootCmd.AddCommand(wordCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(lemmatizeCmd)
	rootCmd.AddCommand(sentimentCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(userWordCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
