// Package scanner provides the character-level cursor the grammar engine
// reads from: peeking, literal matching that only commits on success,
// take-while runs and exact position bookkeeping.
package scanner
