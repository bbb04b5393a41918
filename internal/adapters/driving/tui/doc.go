// Package tui implements the interactive live view.
//
// It follows the Elm architecture via Bubbletea: the App model holds
// the latest position snapshot and the ranked nearby services, position
// updates arrive as messages from the tracking subscription, and key
// presses drive filtering, text search, calls and directions.
package tui
