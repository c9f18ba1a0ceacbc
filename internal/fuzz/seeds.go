package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, предел для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

var languageSeeds = []string{
	"",
	";",
	";;;",
	"1;",
	"-1;",
	"+42;",
	"9223372036854775807;",
	"9223372036854775808;",
	"3.14;",
	".5;",
	"5.;",
	"1.5e3;",
	"1e308;",
	"1.0e999;",
	"True; False;",
	"x;",
	"_under_score1;",
	"переменная;",
	"let x = 1;",
	"1 2;",
	"1",
	"x ?",
	"1.2.3;",
	"\t 7 \n;",
	"(1);",
	"a b;",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
	// невалидный UTF-8
	f.Add([]byte{0xff, ';'})
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
