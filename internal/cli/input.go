// Package cli runs the interactive teny prompt and renders op results for the terminal.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/teny/pkg/server"
	"github.com/charmbracelet/log"
)

const helpText = `Type text and press Enter to check it, or use a command:
  :complete <prefix>         complete a word
  :predict <words>           guess the next word
  :word <word>               word info
  :suggest <word>            spelling suggestions
  :lemma <text>              lemmatize
  :sentiment <text>          polarity
  :translate <word> [fr-mg]  glossary lookup, mg-fr by default
  :stats                     lexicon and model sizes
  :help, :quit`

// InputHandler reads lines, turns them into requests and prints the results.
type InputHandler struct {
	handler *server.Handler
	printer *Printer
	in      io.Reader
	limit   int
}

// NewInputHandler reads from in and prints with p. limit applies to completions,
// predictions and suggestions.
func NewInputHandler(h *server.Handler, in io.Reader, p *Printer, limit int) *InputHandler {
	return &InputHandler{handler: h, printer: p, in: in, limit: limit}
}

// Start runs the prompt until :quit or end of input.
func (h *InputHandler) Start() error {
	log.Print("teny [Malagasy text checker]")
	log.Print("type some text and press Enter (:help for commands, Ctrl+C to exit)")
	reader := bufio.NewReader(h.in)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return nil
		}
		h.handleInput(line)
	}
}

// Request maps one input line to a request. ok is false for :help and unknown commands.
func (h *InputHandler) Request(line string) (req server.Request, ok bool) {
	if !strings.HasPrefix(line, ":") {
		return server.Request{Op: server.OpCheck, Text: line}, true
	}
	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "complete", "c":
		return server.Request{Op: server.OpComplete, Prefix: arg, Limit: h.limit}, true
	case "predict", "p":
		return server.Request{Op: server.OpPredict, Context: strings.Fields(arg), Limit: h.limit}, true
	case "word", "w":
		return server.Request{Op: server.OpWord, Word: arg}, true
	case "suggest", "s":
		return server.Request{Op: server.OpSuggest, Word: arg}, true
	case "lemma", "l":
		return server.Request{Op: server.OpLemmatize, Text: arg}, true
	case "sentiment":
		return server.Request{Op: server.OpSentiment, Text: arg}, true
	case "translate", "t":
		word, dir, _ := strings.Cut(arg, " ")
		return server.Request{Op: server.OpTranslate, Word: word, Direction: strings.TrimSpace(dir)}, true
	case "stats":
		return server.Request{Op: server.OpStats}, true
	}
	return server.Request{}, false
}

func (h *InputHandler) handleInput(line string) {
	req, ok := h.Request(line)
	if !ok {
		if line != ":help" && line != ":h" {
			log.Errorf("Unknown command: %s", line)
		}
		fmt.Fprintln(h.printer.out, helpText)
		return
	}

	start := time.Now()
	result, err := h.handler.Handle(req)
	log.Debugf("Took [ %v ] for %s", time.Since(start), req.Op)
	if err != nil {
		log.Error(err.Error())
		return
	}
	h.printer.Print(result)
}
