// Package models defines the core domain models for Alleytab.
//
// # Model Overview
//
//   - Player: a roster entry for the league; players can be deactivated
//     without losing the games they already bowled
//   - GameRecord: one bowled game — frames 1-9 as pre-aggregated counts
//     plus the literal 10th-frame notation string
//   - TenthFrameResult: derived from the notation, never stored
//   - PlayerStats / TeamStats: derived aggregates, recomputed on demand
//   - Expense / Balance / Settlement: the shared-expense ledger
//   - User: a login account (separate from Player — a user manages the
//     roster, a player bowls)
//
// # Design Principles
//
//  1. Stored models are immutable after creation except for deletion;
//     edits happen by full replacement
//  2. Derived models (stats, balances, settlements) are never persisted
//     and are recomputed from the full underlying set on every request,
//     so edits and deletions can never leave them stale
//  3. Relationships use ID strings, not pointers, to avoid cycles
package models
