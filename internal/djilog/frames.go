package djilog

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/five82/flightdeck/internal/flightdata"
)

// OSDSize is the plaintext size of an OSD record body.
const OSDSize = 30

// Frames decodes every OSD record. Files at KeychainVersion or later need the
// keychains returned by the keychain service; earlier files accept nil.
func (p *Parser) Frames(keychains Keychains) ([]flightdata.Frame, error) {
	encrypted := p.version >= KeychainVersion
	frames := make([]flightdata.Frame, 0, len(p.records))

	var walker groupWalker
	for i, r := range p.records {
		walker.observe(r.Type)
		if r.Type != RecordOSD {
			continue
		}

		body := r.Data
		if encrypted {
			kc, ok := keychains.find(walker.index, FeaturePointBase)
			if !ok {
				return nil, &FrameError{Record: i, Err: fmt.Errorf("no %s keychain in group %d", FeaturePointBase, walker.index)}
			}
			plain, err := decryptRecord(kc, body)
			if err != nil {
				return nil, &FrameError{Record: i, Err: err}
			}
			body = plain
		}

		frame, err := decodeOSD(body)
		if err != nil {
			return nil, &FrameError{Record: i, Err: err}
		}
		frame.Index = len(frames)
		frames = append(frames, frame)
	}
	return frames, nil
}

func decodeOSD(b []byte) (flightdata.Frame, error) {
	if len(b) < OSDSize {
		return flightdata.Frame{}, fmt.Errorf("osd record is %d bytes, want %d", len(b), OSDSize)
	}
	le := binary.LittleEndian
	i16 := func(off int) float64 { return float64(int16(le.Uint16(b[off : off+2]))) }

	return flightdata.Frame{
		Longitude: radToDeg(math.Float64frombits(le.Uint64(b[0:8]))),
		Latitude:  radToDeg(math.Float64frombits(le.Uint64(b[8:16]))),
		Altitude:  i16(16) / 10,
		SpeedX:    i16(18) / 10,
		SpeedY:    i16(20) / 10,
		SpeedZ:    i16(22) / 10,
		Pitch:     i16(24) / 10,
		Roll:      i16(26) / 10,
		Yaw:       i16(28) / 10,
	}, nil
}

func radToDeg(r float64) float64 {
	return r * 180 / math.Pi
}

var errBadPadding = errors.New("invalid padding")

func decryptRecord(kc Keychain, data []byte) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(kc.AESKey)
	if err != nil {
		return nil, fmt.Errorf("decode aes key: %w", err)
	}
	iv, err := base64.StdEncoding.DecodeString(kc.AESIV)
	if err != nil {
		return nil, fmt.Errorf("decode aes iv: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes key: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("aes iv is %d bytes", len(iv))
	}
	if len(data) == 0 || len(data)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(data))
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)
	return unpad(plain, block.BlockSize())
}

func unpad(b []byte, blockSize int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, errBadPadding
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, errBadPadding
		}
	}
	return b[:len(b)-n], nil
}
