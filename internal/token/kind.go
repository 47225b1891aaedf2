package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// LParen opens a descendant list.
	LParen // (
	// RParen closes a descendant list.
	RParen // )
	// Name is a run of word characters (letters, numbers, '_').
	Name
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case Name:
		return "Name"
	}
	return "Unknown"
}
