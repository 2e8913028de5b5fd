package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 16 << 10
)

// grammarSeeds touch every production at least once.
var grammarSeeds = []string{
	"",
	"hello world\n",
	"#!/usr/bin/env emblem\nhi\n",
	"_it_ *bf* `tt` =sc= ==af==\n",
	"# Title\n\n##+ Starred\n",
	".foo[a, k=v]{x}{y}: rest\n",
	".outer::\n  inner par\n\n  .nested: x\n::\n  second trailer\n",
	".qual.name++{arg}\n",
	"a-b--c---d~e~~f~\ng\n",
	"!verbatim *text*!\n",
	"text // comment\n/* block /* nested */ */\n",
	"@[label] see #[label]\n",
	`escape \* \\ \`,
	"*/\n",
	"/* never closed\n",
	".cmd[\n]\n",
	"*unclosed\n",
	"  indented\n",
	"{{{{{{{{{{{{\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range grammarSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.em файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".em" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
