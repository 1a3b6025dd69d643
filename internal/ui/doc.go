// Package ui provides the flightdeck terminal user interface.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. It never decodes anything itself: a
// load runs on its own goroutine inside package loader, and the model polls
// it at the start of every Update. The load goroutine wakes the model by
// sending wakeMsg through the running program, so a finished load is drawn
// without waiting for a key press.
//
// # Package Structure
//
//   - app.go: Model, Update, View and Run
//   - load.go: starting, polling and dismissing loads; the program waker
//   - loadview.go: the Parsing, FetchingKeychains and Error overlays
//   - picker.go: the file prompt that implements loader.Picker
//   - settings.go: the settings modal
//   - flight.go: summary, map link and frame table of the loaded flight
//   - logs.go: the log overlay
//   - header.go: status bar and command bar
//   - theme.go, style_helpers.go: colors and lipgloss helpers
//
// # File Prompt
//
// loader.Picker blocks on the load goroutine. filePrompt bridges it to the
// event loop: Pick sends a pickRequestMsg carrying a reply channel, the
// model opens a bubbles filepicker limited to .txt files, and the reply
// carries the opened file or a cancellation. A prompt whose load has been
// replaced is answered with a cancellation straight away.
//
// # Dropped Files
//
// Terminals deliver a dragged file as a bracketed paste of its path. A
// paste that names a readable file is read off the event loop and starts a
// load from its bytes. The same path is used for a file named on the
// command line.
//
// # Key Bindings
//
// Global:
//   - o: Open a flight log
//   - s: Settings
//   - L: Toggle the log overlay
//   - T: Cycle theme
//   - h/?: Help
//   - e or ctrl+c: Quit
//
// While an error overlay is shown, enter or esc dismisses it and every other
// key except ctrl+c is ignored.
package ui
