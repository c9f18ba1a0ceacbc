// Package fuzztests houses Go fuzz harnesses that exercise the ember front
// end (source -> lexer -> parser). Its goal is to smoke test robustness and
// check the token and span invariants on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/ast, internal/testkit.

package fuzztests
