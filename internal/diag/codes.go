package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexSkippedChar Code = 1001

	// Парсерные
	SynInfo            Code = 2000
	SynUnbalancedClose Code = 2001
	SynUnclosedParen   Code = 2002
	SynEmptyInput      Code = 2003
	SynExtraTopLevel   Code = 2004
	SynNestingTooDeep  Code = 2005

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проект (newick.toml)
	ProjManifestError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	LexInfo:            "Lexical information",
	LexSkippedChar:     "Skipped character",
	SynInfo:            "Syntax information",
	SynUnbalancedClose: "Unbalanced ')'",
	SynUnclosedParen:   "Unclosed '('",
	SynEmptyInput:      "Empty input",
	SynExtraTopLevel:   "More than one top-level tree",
	SynNestingTooDeep:  "Nesting too deep",
	IOLoadFileError:    "Failed to load file",
	IOCacheError:       "Parse cache failure",
	ProjManifestError:  "Invalid newick.toml",
}

// ID returns the stable short identifier of the code, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
