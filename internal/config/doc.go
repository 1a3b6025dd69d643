// Package config loads and saves the flightdeck service settings.
//
// # Overview
//
// Settings hold the three values needed to load a flight log and show it:
// the keychain endpoint, the keychain API key and the map token. They live
// in ~/.config/flightdeck/settings.toml and are editable from the settings
// window or with the settings command.
//
// # Resolution Order
//
// Load layers values in this order, later sources winning:
//
//  1. Built-in defaults (the public keychain endpoint, empty credentials)
//  2. The settings file, when it exists
//  3. FLIGHTDECK_ENDPOINT, FLIGHTDECK_API_KEY and FLIGHTDECK_MAP_TOKEN
//
// A missing settings file is not an error.
//
// # TOML Format
//
//	endpoint = "https://dev.dji.com/openapi/v1/flight-records/keychains"
//	api_key = "..."
//	map_token = "..."
//
// # Validation
//
// The endpoint must be an http(s) URL. Credentials must be printable ASCII.
// Empty values pass; the keychain service reports a missing key itself.
//
// # Watching
//
// Watch follows the settings file so edits made outside the UI apply to
// the next load without a restart.
package config
