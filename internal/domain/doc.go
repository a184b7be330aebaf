// Package domain defines the core entities of the flashcard system: decks,
// cards, and their definitions. Deck documents are authored out-of-band and
// may carry fields this service does not model, so Card and Definition
// preserve unknown JSON fields across a read-modify-write cycle.
package domain
