// Package token defines lexical token kinds for Newick input.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Only LParen, RParen and Name are produced for real input; EOF marks
//     the end of the stream and never appears in lexer.Tokenize output.
//   - Separators (',', whitespace) and any other unrecognized characters
//     are not tokens.
package token
