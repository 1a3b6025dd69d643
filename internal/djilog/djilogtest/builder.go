// Package djilogtest builds synthetic flight-record files for tests.
package djilogtest

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/five82/flightdeck/internal/djilog"
	"github.com/five82/flightdeck/internal/flightdata"
)

type rawRecord struct {
	typ  uint8
	body []byte
}

type group struct {
	key, iv []byte
}

// Builder assembles a flight-record file record by record.
type Builder struct {
	version      uint8
	appPlatform  uint8
	aircraftName string
	records      []rawRecord
	groups       []group
}

// New starts a file with the given format version.
func New(version uint8) *Builder {
	return &Builder{version: version, appPlatform: 3}
}

// Details sets the details area contents.
func (b *Builder) Details(appPlatform uint8, aircraftName string) *Builder {
	b.appPlatform = appPlatform
	b.aircraftName = aircraftName
	return b
}

// Keychain opens a keychain group protected by key and iv. Every group after
// the first is preceded by a KeyStorageRecover record.
func (b *Builder) Keychain(key, iv []byte) *Builder {
	if len(b.groups) > 0 {
		b.Raw(djilog.RecordKeyStorageRecover, nil)
	}
	b.groups = append(b.groups, group{key: key, iv: iv})

	ciphertext := []byte(fmt.Sprintf("sealed-key-%d", len(b.groups)))
	body := make([]byte, 4+len(ciphertext))
	binary.LittleEndian.PutUint16(body[0:2], uint16(djilog.FeaturePointBase))
	binary.LittleEndian.PutUint16(body[2:4], uint16(len(ciphertext)))
	copy(body[4:], ciphertext)
	return b.Raw(djilog.RecordKeyStorage, body)
}

// OSD appends a telemetry record, encrypting it with the current keychain
// group when the version requires it.
func (b *Builder) OSD(f flightdata.Frame) *Builder {
	body := EncodeOSD(f)
	if int(b.version) >= djilog.KeychainVersion && len(b.groups) > 0 {
		g := b.groups[len(b.groups)-1]
		body = encrypt(g.key, g.iv, body)
	}
	return b.Raw(djilog.RecordOSD, body)
}

// Raw appends a record verbatim.
func (b *Builder) Raw(typ uint8, body []byte) *Builder {
	b.records = append(b.records, rawRecord{typ: typ, body: body})
	return b
}

// Keychains returns what the keychain service would answer for this file.
func (b *Builder) Keychains() djilog.Keychains {
	out := make(djilog.Keychains, 0, len(b.groups))
	for _, g := range b.groups {
		out = append(out, []djilog.Keychain{{
			FeaturePoint: djilog.FeaturePointBase.String(),
			AESKey:       base64.StdEncoding.EncodeToString(g.key),
			AESIV:        base64.StdEncoding.EncodeToString(g.iv),
		}})
	}
	return out
}

// Bytes renders the file.
func (b *Builder) Bytes() []byte {
	prefix := 100
	if b.version < 6 {
		prefix = 12
	}

	var records bytes.Buffer
	for _, r := range b.records {
		records.WriteByte(r.typ)
		_ = binary.Write(&records, binary.LittleEndian, uint16(len(r.body)))
		records.Write(r.body)
		records.WriteByte(0xFF)
	}

	details := append([]byte{b.appPlatform}, []byte(b.aircraftName)...)
	details = append(details, 0, 0, 0, 0)

	out := make([]byte, prefix, prefix+records.Len()+len(details))
	binary.LittleEndian.PutUint64(out[0:8], uint64(prefix+records.Len()))
	binary.LittleEndian.PutUint16(out[8:10], uint16(len(details)))
	out[10] = b.version
	out = append(out, records.Bytes()...)
	out = append(out, details...)
	return out
}

// EncodeOSD renders the plaintext OSD body for f.
func EncodeOSD(f flightdata.Frame) []byte {
	out := make([]byte, djilog.OSDSize)
	le := binary.LittleEndian
	le.PutUint64(out[0:8], math.Float64bits(f.Longitude*math.Pi/180))
	le.PutUint64(out[8:16], math.Float64bits(f.Latitude*math.Pi/180))
	put16 := func(off int, v float64) { le.PutUint16(out[off:off+2], uint16(int16(math.Round(v*10)))) }
	put16(16, f.Altitude)
	put16(18, f.SpeedX)
	put16(20, f.SpeedY)
	put16(22, f.SpeedZ)
	put16(24, f.Pitch)
	put16(26, f.Roll)
	put16(28, f.Yaw)
	return out
}

func encrypt(key, iv, plain []byte) []byte {
	block, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}
	n := block.BlockSize() - len(plain)%block.BlockSize()
	padded := append(append([]byte{}, plain...), bytes.Repeat([]byte{byte(n)}, n)...)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out
}
