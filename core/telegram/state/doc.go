// Package state tracks multi-step conversations for Telegram bots.
// Each sender has at most one pending conversation, held as an explicit
// record rather than chained next-step callbacks, so the collected data
// stays inspectable and testable.
package state
