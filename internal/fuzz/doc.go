
// Package fuzztests houses Go fuzz harnesses for the Newick pipeline
// (source -> lexer -> parser -> render). They guard against panics, hangs
// and round-trip breakage on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и парсер,
// проверяя инварианты токенов и идемпотентность Render.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/testkit.

package fuzztests
