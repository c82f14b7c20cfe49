package cmd

import (
	"fmt"

	"github.com/bastiangx/teny/internal/app"
	"github.com/bastiangx/teny/internal/store"
	"github.com/bastiangx/teny/pkg/lexicon"
	"github.com/bastiangx/teny/pkg/ngram"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagOrder       int
	flagOut         string
	flagDB          string
	flagSeed        bool
	flagSaveLexicon bool
	flagExportLex   string
)

var trainCmd = &cobra.Command{
	Use:   "train [corpus files...]",
	Short: "Train an n-gram model and save it to a file or bbolt database",
	Long: "Each corpus file holds one sentence per line; blank lines and # comments are skipped. " +
		"With no files the embedded seed corpus is used.",
	RunE: runTrain,
}

func runTrain(cmd *cobra.Command, args []string) error {
	order := cfg.Model.Order
	if flagOrder > 0 {
		order = flagOrder
	}
	model, err := ngram.New(order)
	if err != nil {
		return err
	}

	if flagSeed || len(args) == 0 {
		model.Train(ngram.SeedCorpus())
	}
	for _, path := range args {
		sentences, err := ngram.ReadCorpusFile(path)
		if err != nil {
			return err
		}
		model.Train(sentences)
		log.Debugf("Trained on %s: %d sentences", path, len(sentences))
	}

	out := cfg.Model.SnapshotPath
	if flagOut != "" {
		out = flagOut
	}
	db := cfg.Model.DBPath
	if flagDB != "" {
		db = flagDB
	}
	if out == "" && db == "" {
		return fmt.Errorf("nowhere to save the model: pass --out or --db")
	}

	if flagExportLex != "" {
		lex, err := app.LoadLexicon(cmd.Context(), cfg.Lexicon)
		if err != nil {
			return err
		}
		if err := lex.Export(flagExportLex); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "lexicon exported to %s: %d words\n", flagExportLex, lex.Len())
	}

	if out != "" {
		if err := model.SaveFile(out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "model written to %s\n", out)
	}
	if db != "" {
		if err := saveToDB(cmd, db, model); err != nil {
			return err
		}
	}
	return printResult(cmd.OutOrStdout(), model.Stats())
}

// saveToDB stores the model, and the merged lexicon when asked. The lexicon is
// loaded first since its snapshot may live in the same file and bbolt locks it.
func saveToDB(cmd *cobra.Command, path string, model *ngram.Model) error {
	var lex *lexicon.Lexicon
	if flagSaveLexicon {
		var err error
		if lex, err = app.LoadLexicon(cmd.Context(), cfg.Lexicon); err != nil {
			return err
		}
	}

	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := model.Save(s, store.DefaultKey); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "model stored in %s\n", path)

	if lex == nil {
		return nil
	}
	if err := lex.Save(s, store.DefaultKey); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "lexicon snapshot stored in %s: %d words\n", path, lex.Len())
	return nil
}

func init() {
	f := trainCmd.Flags()
	f.IntVar(&flagOrder, "order", 0, "n-gram order, at least 2 (default from config)")
	f.StringVar(&flagOut, "out", "", "write the model snapshot to this file")
	f.StringVar(&flagDB, "db", "", "store the model in this bbolt database")
	f.BoolVar(&flagSeed, "seed", false, "also train on the embedded seed corpus")
	f.BoolVar(&flagSaveLexicon, "save-lexicon", false, "store the merged lexicon in the --db database too")
	f.StringVar(&flagExportLex, "export-lexicon", "", "also write the merged lexicon as a word list (.txt) or definitions map (.json)")
}
