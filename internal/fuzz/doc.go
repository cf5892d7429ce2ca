// Package fuzztests houses Go fuzz harnesses for the back end. Fuzz bytes
// drive a generator of well-formed statement streams; each stream is compiled
// with a small register file and the emitted code is executed statement by
// statement against a direct SSA interpreter.
//
// Назначение: ловить нарушения инвариантов аллокатора и расхождения между
// эмитированным кодом и семантикой SSA.
//
// Не делает: генерацию некорректных потоков узлов (их покрывают тесты ssa).
package fuzztests
