// Package task provides in-memory background task processing: a buffered
// queue, a worker pool, and a runner tying them together. Deck generation
// runs as a task so HTTP handlers return immediately, and the default
// single-worker configuration keeps provider calls strictly sequential
// across sessions.
package task
