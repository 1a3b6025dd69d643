// Package app is the composition root for flightdeck.
//
// # Overview
//
// Run wires settings, preferences, the DJI decoder and the Bubble Tea UI,
// then blocks until the user quits. Decode drives a single load without a
// terminal and writes the decoded flight to an io.Writer.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Settings snapshot
//	       ├─────> prefs.Load()         Theme and last directory
//	       ├─────> config.Watch()       Settings edits from elsewhere
//	       ├─────> loader.NewDJIDecoder Decoder + keychain client
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Headless:
//	┌─────────────────────────────────────────┐
//	│ Decode()                                │
//	│  ├─> loader.FromBytes()                 │
//	│  ├─> wait for wake, then Poll()         │
//	│  └─> FlightData.Export()                │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Run returns an error when the settings file cannot be parsed or fails
// validation. A settings watcher that cannot start is logged and skipped.
// Decode returns ErrLoadFailed, wrapped with the status message, when the
// load ends in the Error status.
package app
