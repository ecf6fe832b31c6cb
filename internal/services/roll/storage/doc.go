// Package storage defines persistence contracts for roll history.
//
// The roll service records every evaluated expression together with the seed
// that produced it, so a stored roll can be listed or replayed later.
package storage
