/*
Package server exposes the teny analysis pipeline over msgpack IPC and, optionally, HTTP.

# IPC

The server reads a stream of msgpack maps from stdin and writes one msgpack map per
request to stdout. Every request names an op and carries an ID that is echoed back:

	{"id": "req_001", "op": "check", "text": "Tsaara daholo"}
	{"id": "req_002", "op": "complete", "p": "ma", "l": 5}
	{"id": "req_003", "op": "predict", "ctx": ["manao"], "l": 3}

Successful responses wrap the op result with timing in microseconds:

	{"id": "req_002", "op": "complete", "r": {"s": [{"w": "manao", "r": 1}], "c": 1}, "t": 41}

Failures carry a message and an HTTP-like code, 400 for bad input and 500 otherwise:

	{"id": "req_004", "e": "empty text", "c": 400}

Before the first request the server writes {"status": "ready"}.

# Ops

check, correct, suggest, word, lemmatize, predict, complete, sentiment, translate,
stats and health. The HTTP adapter serves the same ops as POST /api/{op} with JSON
bodies using the long field names.
*/
package server

import (
	"github.com/bastiangx/teny/pkg/lexicon"
	"github.com/bastiangx/teny/pkg/ngram"
)

// Op names.
const (
	OpCheck     = "check"
	OpCorrect   = "correct"
	OpSuggest   = "suggest"
	OpWord      = "word"
	OpLemmatize = "lemmatize"
	OpPredict   = "predict"
	OpComplete  = "complete"
	OpSentiment = "sentiment"
	OpTranslate = "translate"
	OpStats     = "stats"
	OpHealth    = "health"
)

// Request is the single envelope for every op. Fields an op does not use are ignored.
type Request struct {
	ID        string   `msgpack:"id" json:"id,omitempty"`
	Op        string   `msgpack:"op" json:"op,omitempty"`
	Text      string   `msgpack:"text,omitempty" json:"text,omitempty"`
	Word      string   `msgpack:"w,omitempty" json:"word,omitempty"`
	Prefix    string   `msgpack:"p,omitempty" json:"prefix,omitempty"`
	Context   []string `msgpack:"ctx,omitempty" json:"context,omitempty"`
	Limit     int      `msgpack:"l,omitempty" json:"limit,omitempty"`
	Direction string   `msgpack:"d,omitempty" json:"direction,omitempty"`
	Kind      string   `msgpack:"k,omitempty" json:"kind,omitempty"`
}

// Response wraps a successful op result.
type Response struct {
	ID        string `msgpack:"id" json:"id,omitempty"`
	Op        string `msgpack:"op" json:"op"`
	Result    any    `msgpack:"r" json:"result"`
	TimeTaken int64  `msgpack:"t" json:"time_us"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id" json:"id,omitempty"`
	Error string `msgpack:"e" json:"error"`
	Code  int    `msgpack:"c" json:"status"`
}

// CompletionSuggestion is one ranked completion. Rank starts at 1.
type CompletionSuggestion struct {
	Word string `msgpack:"w" json:"word"`
	Rank uint16 `msgpack:"r" json:"rank"`
}

// CompletionResponse is the result of the complete op.
type CompletionResponse struct {
	Prefix      string                 `msgpack:"p" json:"prefix"`
	Suggestions []CompletionSuggestion `msgpack:"s" json:"suggestions"`
	Count       int                    `msgpack:"c" json:"count"`
}

// StatsResponse is the result of the stats op. Model is nil when none is loaded.
type StatsResponse struct {
	Lexicon  lexicon.Stats `msgpack:"lex" json:"lexicon"`
	Model    *ngram.Stats  `msgpack:"model,omitempty" json:"model,omitempty"`
	Requests int64         `msgpack:"req" json:"requests"`
}

// StatusResponse is the ready and health message.
type StatusResponse struct {
	Status string `msgpack:"status" json:"status"`
}
