package cmd

import (
	"strings"

	"github.com/bastiangx/teny/pkg/server"
	"github.com/spf13/cobra"
)

var (
	flagDirection string
	flagKind      string
)

var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Run every check over text (args or stdin) and score it",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textArg(cmd, args)
		if err != nil {
			return err
		}
		return runOp(cmd, server.Request{Op: server.OpCheck, Text: text, Kind: flagKind})
	},
}

var correctCmd = &cobra.Command{
	Use:   "correct [text]",
	Short: "List unknown words with spelling suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textArg(cmd, args)
		if err != nil {
			return err
		}
		return runOp(cmd, server.Request{Op: server.OpCorrect, Text: text})
	},
}

var wordCmd = &cobra.Command{
	Use:   "word <word>",
	Short: "Show definition, lemma and suggestions for a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, server.Request{Op: server.OpWord, Word: args[0]})
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <word>",
	Short: "Spelling suggestions for one word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, server.Request{Op: server.OpSuggest, Word: args[0]})
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <prefix>",
	Short: "Complete a word prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, server.Request{Op: server.OpComplete, Prefix: args[0], Limit: limitOrDefault()})
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict <words...>",
	Short: "Guess the next word after the given context",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, server.Request{Op: server.OpPredict, Context: strings.Fields(strings.Join(args, " ")), Limit: limitOrDefault()})
	},
}

var lemmatizeCmd = &cobra.Command{
	Use:   "lemmatize [text]",
	Short: "Split each word into prefix, root and suffix",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textArg(cmd, args)
		if err != nil {
			return err
		}
		return runOp(cmd, server.Request{Op: server.OpLemmatize, Text: text})
	},
}

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [text]",
	Short: "Coarse positive or negative polarity",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textArg(cmd, args)
		if err != nil {
			return err
		}
		return runOp(cmd, server.Request{Op: server.OpSentiment, Text: text})
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate <word>",
	Short: "Look a word up in the Malagasy-French glossary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, server.Request{Op: server.OpTranslate, Word: args[0], Direction: flagDirection})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lexicon and model sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, server.Request{Op: server.OpStats})
	},
}

func limitOrDefault() int {
	if flagLimit > 0 {
		return flagLimit
	}
	return cfg.CLI.DefaultLimit
}

func init() {
	completeCmd.Flags().IntVarP(&flagLimit, "limit", "l", 0, "number of completions")
	predictCmd.Flags().IntVarP(&flagLimit, "limit", "l", 0, "number of predictions")
	translateCmd.Flags().StringVar(&flagDirection, "dir", "mg-fr", "mg-fr or fr-mg")
	checkCmd.Flags().StringVar(&flagKind, "kind", "", "only list findings of this kind, e.g. spelling or phonotactic")
}
