package djilog

import (
	"bytes"
	"encoding/binary"
)

const (
	prefixSize       = 100
	legacyPrefixSize = 12
	legacyVersion    = 6

	// KeychainVersion is the first format version whose records are
	// encrypted with keys held by the keychain service.
	KeychainVersion = 13
)

// Record types understood by the decoder.
const (
	RecordOSD               uint8 = 1
	RecordKeyStorageRecover uint8 = 50
	RecordKeyStorage        uint8 = 56
)

const (
	recordHeaderSize = 3
	recordEnd        = 0xFF
)

// Details carries the file metadata stored after the records area.
type Details struct {
	AppPlatform  uint8
	AircraftName string
}

type record struct {
	Type   uint8
	Offset int
	Data   []byte
}

// Parser is a decoded file header together with its framed records.
type Parser struct {
	version uint8
	details Details
	records []record
}

// Parse validates the prefix and record framing of data.
func Parse(data []byte) (*Parser, error) {
	if len(data) < legacyPrefixSize {
		return nil, newHeaderError(0, "file is %d bytes, shorter than the %d byte prefix", len(data), legacyPrefixSize)
	}

	detailsOffset := binary.LittleEndian.Uint64(data[0:8])
	detailsLength := int(binary.LittleEndian.Uint16(data[8:10]))
	version := data[10]
	if version == 0 {
		return nil, newHeaderError(10, "unsupported format version 0")
	}

	prefix := legacyPrefixSize
	if version >= legacyVersion {
		prefix = prefixSize
	}
	if len(data) < prefix {
		return nil, newHeaderError(0, "file is %d bytes, shorter than the %d byte prefix", len(data), prefix)
	}
	if detailsOffset < uint64(prefix) || detailsOffset > uint64(len(data)) {
		return nil, newHeaderError(0, "details offset %d outside file of %d bytes", detailsOffset, len(data))
	}
	recordsEnd := int(detailsOffset)
	if recordsEnd+detailsLength > len(data) {
		return nil, newHeaderError(recordsEnd, "details length %d exceeds file", detailsLength)
	}

	records, err := splitRecords(data, prefix, recordsEnd)
	if err != nil {
		return nil, err
	}

	return &Parser{
		version: version,
		details: parseDetails(data[recordsEnd : recordsEnd+detailsLength]),
		records: records,
	}, nil
}

func splitRecords(data []byte, start, end int) ([]record, error) {
	var records []record
	pos := start
	for pos < end {
		if pos+recordHeaderSize > end {
			return nil, newHeaderError(pos, "truncated record header")
		}
		typ := data[pos]
		length := int(binary.LittleEndian.Uint16(data[pos+1 : pos+3]))
		body := pos + recordHeaderSize
		if body+length+1 > end {
			return nil, newHeaderError(pos, "record type %d with length %d overruns records area", typ, length)
		}
		if data[body+length] != recordEnd {
			return nil, newHeaderError(body+length, "record type %d missing end marker", typ)
		}
		records = append(records, record{Type: typ, Offset: pos, Data: data[body : body+length]})
		pos = body + length + 1
	}
	return records, nil
}

func parseDetails(raw []byte) Details {
	var d Details
	if len(raw) == 0 {
		return d
	}
	d.AppPlatform = raw[0]
	name := raw[1:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	d.AircraftName = string(bytes.TrimSpace(name))
	return d
}

// Version returns the file format version.
func (p *Parser) Version() int {
	return int(p.version)
}

// Details returns the metadata stored after the records.
func (p *Parser) Details() Details {
	return p.details
}

// RecordCount returns the number of framed records.
func (p *Parser) RecordCount() int {
	return len(p.records)
}
