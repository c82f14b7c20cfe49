package cmd

import (
	"fmt"
	"sort"

	"github.com/bastiangx/teny/pkg/lexicon"
	"github.com/spf13/cobra"
)

var userWordCmd = &cobra.Command{
	Use:   "userword",
	Short: "Manage the shared user word set in Redis",
}

var userWordAddCmd = &cobra.Command{
	Use:   "add <words...>",
	Short: "Add words to the shared set",
	Args:  cobra.MinimumNArgs(1),
	RunE: withUserWords(func(cmd *cobra.Command, uw *lexicon.UserWords, args []string) error {
		for _, w := range args {
			if err := uw.Add(cmd.Context(), w); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %d word(s) to %s\n", len(args), uw.Key())
		return nil
	}),
}

var userWordRemoveCmd = &cobra.Command{
	Use:   "remove <words...>",
	Short: "Remove words from the shared set",
	Args:  cobra.MinimumNArgs(1),
	RunE: withUserWords(func(cmd *cobra.Command, uw *lexicon.UserWords, args []string) error {
		for _, w := range args {
			if err := uw.Remove(cmd.Context(), w); err != nil {
				return err
			}
		}
		return nil
	}),
}

var userWordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the shared set",
	RunE: withUserWords(func(cmd *cobra.Command, uw *lexicon.UserWords, args []string) error {
		words, err := uw.All(cmd.Context())
		if err != nil {
			return err
		}
		sort.Strings(words)
		for _, w := range words {
			fmt.Fprintln(cmd.OutOrStdout(), w)
		}
		return nil
	}),
}

func withUserWords(fn func(*cobra.Command, *lexicon.UserWords, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if cfg.Lexicon.RedisAddr == "" {
			return fmt.Errorf("no Redis address: set [lexicon] redis_addr or pass --redis")
		}
		uw, err := lexicon.DialUserWords(cmd.Context(), cfg.Lexicon.RedisAddr, cfg.Lexicon.RedisKey)
		if err != nil {
			return err
		}
		defer uw.Close()
		return fn(cmd, uw, args)
	}
}

func init() {
	userWordCmd.AddCommand(userWordAddCmd)
	userWordCmd.AddCommand(userWordRemoveCmd)
	userWordCmd.AddCommand(userWordListCmd)
}
