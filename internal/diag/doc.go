// Package diag defines the diagnostic model shared by the lexer, parser and
// driver.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string ID (LEX1001, SYN2001, ...), a short Message and the Primary
// source.Span. Notes add secondary spans when they carry new context (for
// example "unclosed '(' opened here").
//
// Producers emit through a Reporter; BagReporter collects into a bounded Bag
// which supports deterministic sorting and deduplication. Package diag does
// no formatting or IO; rendering lives in internal/diagfmt.
package diag
