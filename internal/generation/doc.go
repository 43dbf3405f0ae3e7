// Package generation provides the boundary interfaces for the external
// AI providers used to build a deck. It abstracts the details of the
// content-generation and image-generation APIs (Gemini), allowing the
// pipeline to assemble decks without coupling to a specific service.
package generation
