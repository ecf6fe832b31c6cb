// Package roll turns dice notation into recorded, reproducible rolls.
//
// A roll parses the expression, renders its canonical notation, evaluates it
// with a random source seeded from the request (or from crypto/rand when the
// request carries no seed) and renders the rolled tree as the roll detail.
// Replaying a roll with its seed yields the same detail and total.
package roll
