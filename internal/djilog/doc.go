// Package djilog decodes DJI flight-record files.
//
// # Overview
//
// A flight record is a fixed prefix, a records area, and a details area.
// Decoding happens in three fallible steps that mirror how the data is
// protected:
//
//  1. Parse validates the prefix and the record framing and returns a Parser
//     carrying the format version.
//  2. For version 13 and later, record payloads are AES encrypted. The
//     per-file keys are obtained by sending the file's KeyStorage records to
//     DJI's keychain service: Parser.KeychainRequest builds that request and
//     Client.FetchKeychains performs it.
//  3. Parser.Frames decodes the OSD telemetry records into flightdata.Frame
//     values, decrypting them with the fetched keychains when required.
//
// # Layout
//
// The prefix is 100 bytes (12 bytes before version 6), little-endian:
//
//	[0:8]   details offset (u64)
//	[8:10]  details length (u16)
//	[10]    format version (u8)
//
// Records occupy [prefix, details offset). Each record is
//
//	type (u8) | length (u16) | payload | 0xFF
//
// The details area starts with the app platform byte, which the keychain
// service expects as the request's department, followed by the NUL-padded
// aircraft name.
//
// # Errors
//
// Every step returns a typed error (*HeaderError, *KeychainError,
// *FetchError, *FrameError) so callers can classify failures with errors.As.
package djilog
