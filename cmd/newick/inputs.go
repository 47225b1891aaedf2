package main

import (
	"fmt"
	"io"
	"os"
)

const (
	stdinPath = "-"
	stdinName = "<stdin>"
)

type inputKind uint8

const (
	inputStdin inputKind = iota
	inputFile
	inputDir
)

// classifyInput reports whether path is stdin, a file or a directory.
func classifyInput(path string) (inputKind, error) {
	if path == stdinPath {
		return inputStdin, nil
	}
	st, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return inputDir, nil
	}
	return inputFile, nil
}

func readStdin(r io.Reader) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return content, nil
}
