// Package intents dispatches outbound user intents to the host OS.
//
// Calls and directions are expressed as URLs (tel: and a Google Maps
// directions link) and handed to the platform opener. Dispatches are
// fire-and-forget: failures are logged and otherwise ignored.
package intents
