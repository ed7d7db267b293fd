// Package keylock provides striped mutual exclusion keyed by string.
//
// It exists so that registry promotions for independent (source, dataset)
// keys can run in parallel while promotions for the same key serialize.
// Stripe selection uses murmur3 for stable, well-distributed hashing.
package keylock
