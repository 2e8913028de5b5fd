// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> scanner -> parser). They guard against panics, hangs and
// broken span invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
