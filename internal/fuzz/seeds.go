package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"newick/internal/project"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var fixedSeeds = []string{
	"",
	"A",
	"()",
	"(A, (B, C))",
	"((A, B), C, ((D, E), F))",
	")(",
	"(A",
	"A B",
	"(((((((((())))))))))",
	"(A:0.1,B:0.2)root;",
	"'quoted name'[comment](x)",
	"(Ñandú,東京,x٣)",
	"(A\xffB)",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range fixedSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	exts := project.Defaults().Parse.Extensions
	// проходим по дереву testdata, добавляем все файлы деревьев
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !project.HasTreeExt(path, exts) {
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
