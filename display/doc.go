// Package display renders recurrence rules as localized sentences.
//
// All wording comes from a Phrases table passed to NewGenerator. English
// and French are built in; other languages are loaded from YAML with
// LoadPhrases, which fills missing keys from the closest built-in table.
package display
