// Package models defines the core domain models for the duty roster.
//
// # Models
//
//   - Person: a roster entry, identified by phone number
//   - Team: an assignment target with a display name, color and stable key
//   - Shift and DateMode: the selectors that shape the report header
//
// # Design Principles
//
// 1. **Phone is identity**: people have no separate id; the phone number is unique
// 2. **Key, not name**: assignments reference Team.Key so renames never break them
// 3. **Plain values**: models carry no behavior beyond validation helpers, the
//    roster package owns every mutation
//
// The JSON tags match the persisted record layout and the import/export document,
// which is shared with the original browser tool (`duty_data.json`).
package models
