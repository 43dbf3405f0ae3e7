// Package service implements the deck generation orchestration: session
// management, the assembly pipeline state machine, and export/viewer access
// to completed decks.
package service
