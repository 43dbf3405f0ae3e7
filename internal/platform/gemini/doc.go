// Package gemini provides implementations of the generation interfaces
// using Google's Gemini API: a content client that turns an uploaded
// chapter into a schema-validated deck structure, and an image client
// that produces per-slide diagrams.
package gemini
