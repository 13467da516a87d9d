// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes through
// the script compiler (source -> compiler -> byte stream) and check that it
// neither panics nor breaks its output invariants.
//
// Назначение: загружать байты в FileSet и прогонять их через компилятор в
// обоих режимах.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/compiler, internal/diag,
// internal/testkit.
package fuzztests
