// Package format renders platform entities into deterministic text.
//
// The three formatters here are the interoperability surface of the
// adapter: any client consuming it sees entities only through these
// renderings, so line order, suppression rules and truncation bounds are
// load-bearing and covered by tests.
//
//   - Content: one fetched content record -> labeled multi-line text
//   - Conversation: one conversation -> labeled multi-line text
//   - Results: heterogeneous result rows -> a bounded markup document
//
// All functions are pure and total: a nil record renders as the empty
// string and missing optional fields simply omit their lines.
package format
