// Package processor contains the core business logic for mining
// sentences into flashcards. It wires the explanation, image and
// speech backends into the card pipeline, orchestrates the CLI and
// batch modes, and launches the GUI.
package processor
