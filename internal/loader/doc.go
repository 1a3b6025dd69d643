// Package loader turns a raw flight-record file into flight data without
// blocking the caller.
//
// # Overview
//
// A Loader coordinates one load attempt. Construction spawns a goroutine
// that decodes the file (and, for newer formats, fetches decryption
// keychains) while the caller keeps drawing. The goroutine reports progress
// as a sequence of Status values over a channel that only it writes and only
// the Loader reads.
//
// # Statuses
//
//	WaitingForInput ──> Parsing ──> Success
//	                       │   └──> FetchingKeychains ──> Success
//	                       │                 └──> Error
//	                       └──> Error ──(Dismiss)──> ClosedAfterError
//
// A Loader built with FromBytes starts at Parsing; one built with FromPicker
// starts at WaitingForInput and stays there for good if the user cancels the
// prompt.
//
// # Polling
//
// The caller calls Poll once per redraw. Poll drains every pending status
// and keeps the most recent one. Because the caller only redraws when
// something wakes it, the goroutine calls Waker.Wake after entering
// FetchingKeychains, before frame decoding, and after any terminal status.
//
// On Success the caller moves the record out with TakeFlightData (a second
// call returns nothing) and drops the Loader. On Error the caller shows the
// message; Dismiss moves the Loader to ClosedAfterError and the caller drops
// it.
//
// # Superseded loads
//
// Starting a new load simply replaces the caller's Loader. The old goroutine
// is not cancelled. Its channel is buffered for every status a task can send,
// so its remaining sends complete without a reader and the channel is
// collected with the goroutine.
package loader
