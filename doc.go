// Package younginvestor implements the rules of Young Investor, a game that
// teaches children how stocks, percentages and diversification work.
//
// The package is the game's bookkeeping core. A presentation layer (a
// browser front-end, the `yi` command line) drives it and renders the
// results:
//   - Ledger: the player's cash and the four holdings, with average-cost
//     basis tracking and typed rejections for invalid orders.
//   - Catalog: the pre-authored trading rounds, each with its price series,
//     news and whether selling is allowed.
//   - Progress: the milestones reached so far (bank account, lessons,
//     mini-games, trades) used to unlock the scene flow.
//   - Flow: the named scenes of the game and the guided order in which they
//     are visited.
//   - Game: one player's session, owning all of the above and publishing a
//     Snapshot after every change so it can be persisted.
//
// Nothing in this package performs I/O or blocks.
package younginvestor
