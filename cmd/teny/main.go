// Copyright 2025 The Teny Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Teny checks Malagasy text: spelling, phonotactic and morphological rules,
sentence structure, lemmas, next-word prediction and completion.

# Usage

Check a sentence and print a findings table:

	teny check "Tsaara daholo ny fianakaviana"

Start the msgpack IPC server used by editors:

	teny serve --watch

Serve the same ops as JSON over HTTP:

	teny http --addr 127.0.0.1:8000

Explore interactively:

	teny repl

Train and persist an n-gram model from a corpus, one sentence per line:

	teny train corpus.txt --order 3 --out model.msgpack --db teny.db

# Configuration

Settings live in a TOML file created with defaults on first run, under
~/.config/teny/config.toml unless --config points elsewhere:

	[checker]
	threshold = 70.0
	suggestion_limit = 5

	[lexicon]
	definitions_path = "data/definitions.json"
	word_list_path = "data/words.txt"
	redis_addr = ""

	[model]
	order = 2
	snapshot_path = "data/model.msgpack"
	train_seed = true

	[server]
	max_text_length = 20000
	http_addr = "127.0.0.1:8000"

A file with broken syntax is recovered section by section. Missing lexicon
files are skipped and the built-in word list is always loaded. With no model
snapshot the seed corpus is trained at startup, or prediction is disabled when
train_seed is false.

# IPC Protocol

See package server for the request and response maps.
*/
package main

import (
	"os"

	"github.com/bastiangx/teny/cmd/teny/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
