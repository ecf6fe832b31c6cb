// Package ast defines the tree model shared by the dice interpreter and
// generator.
//
// A tree is built from *Node values, each tagged with a Kind and carrying only
// the typed fields that kind reads. Children are exclusively owned: a node has
// at most one parent for its whole lifetime and trees never contain cycles.
//
// Construction performs no shape validation. The interpreter and generator
// check the structure they need and report DICE_INVALID_TREE errors instead of
// trusting it.
//
// # Resolution
//
// Evaluating a Dice node resolves it: its two operands (count and sides) are
// set aside and replaced by one DiceRoll leaf per rolled die. The node identity
// never changes, so references held before evaluation remain valid. Reset puts
// the operands back so a subtree can be rolled again.
package ast
