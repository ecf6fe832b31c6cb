// Package service exposes the roll service as MCP tools.
//
// Tools:
//
//   - roll_dice evaluates an expression, optionally with a client seed.
//   - dice_notation returns the canonical notation of an expression without
//     rolling it.
//   - roll_history lists recorded rolls, newest first.
//   - roll_replay re-evaluates a recorded roll from its seed.
//
// Domain failures come back as tool errors whose text is the localized
// message followed by the error code, e.g.
// "Invalid dice notation at position 3 [DICE_SYNTAX]".
package service
