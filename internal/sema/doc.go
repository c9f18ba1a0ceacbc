// Package sema is the analysis stage between the parser and the evaluator.
//
// There is no binding or typing yet, so Analyze only walks the program,
// rejects node kinds it does not know and records what it saw. The program
// itself is passed through untouched.
package sema
