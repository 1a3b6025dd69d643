package djilog

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodedFeaturePoint is one KeyStorage record in request form.
type EncodedFeaturePoint struct {
	FeaturePoint  string `json:"featurePoint"`
	AESCiphertext string `json:"aesCiphertext"`
}

// KeychainRequest is the body sent to the keychain service.
type KeychainRequest struct {
	Version    int                     `json:"version"`
	Department int                     `json:"department"`
	Keychains  [][]EncodedFeaturePoint `json:"keychainsArray"`
}

// Keychain is one decrypted key returned by the keychain service.
type Keychain struct {
	FeaturePoint string `json:"featurePoint"`
	AESKey       string `json:"aesKey"`
	AESIV        string `json:"aesIv"`
}

// Keychains groups keys the way the file groups its KeyStorage records.
// Records between two KeyStorageRecover markers share one group.
type Keychains [][]Keychain

// keyStorage is the decoded body of a KeyStorage record.
type keyStorage struct {
	FeaturePoint FeaturePoint
	Data         []byte
}

func parseKeyStorage(raw []byte) (keyStorage, error) {
	if len(raw) < 4 {
		return keyStorage{}, fmt.Errorf("key storage record is %d bytes", len(raw))
	}
	fp := FeaturePoint(binary.LittleEndian.Uint16(raw[0:2]))
	n := int(binary.LittleEndian.Uint16(raw[2:4]))
	if 4+n > len(raw) {
		return keyStorage{}, fmt.Errorf("key storage data length %d exceeds record", n)
	}
	return keyStorage{FeaturePoint: fp, Data: raw[4 : 4+n]}, nil
}

// groupWalker tracks which keychain group a record belongs to. A
// KeyStorageRecover record opens a new group once the current one holds at
// least one KeyStorage record.
type groupWalker struct {
	index      int
	hasEntries bool
}

func (g *groupWalker) observe(typ uint8) {
	switch typ {
	case RecordKeyStorageRecover:
		if g.hasEntries {
			g.index++
			g.hasEntries = false
		}
	case RecordKeyStorage:
		g.hasEntries = true
	}
}

// KeychainRequest collects the file's KeyStorage records into a request for
// the keychain service.
func (p *Parser) KeychainRequest() (*KeychainRequest, error) {
	if p.version < KeychainVersion {
		return nil, &KeychainError{Reason: fmt.Sprintf("format version %d does not use keychains", p.version)}
	}

	var groups [][]EncodedFeaturePoint
	var walker groupWalker
	for i, r := range p.records {
		walker.observe(r.Type)
		if r.Type != RecordKeyStorage {
			continue
		}
		ks, err := parseKeyStorage(r.Data)
		if err != nil {
			return nil, &KeychainError{Reason: fmt.Sprintf("record %d: %v", i, err)}
		}
		for len(groups) <= walker.index {
			groups = append(groups, nil)
		}
		groups[walker.index] = append(groups[walker.index], EncodedFeaturePoint{
			FeaturePoint:  ks.FeaturePoint.String(),
			AESCiphertext: base64.StdEncoding.EncodeToString(ks.Data),
		})
	}
	if len(groups) == 0 {
		return nil, &KeychainError{Reason: "file has no key storage records"}
	}

	return &KeychainRequest{
		Version:    int(p.version),
		Department: int(p.details.AppPlatform),
		Keychains:  groups,
	}, nil
}

// find returns the keychain for a feature point within a group.
func (k Keychains) find(group int, fp FeaturePoint) (Keychain, bool) {
	if group < 0 || group >= len(k) {
		return Keychain{}, false
	}
	name := fp.String()
	for _, kc := range k[group] {
		if kc.FeaturePoint == name {
			return kc, true
		}
	}
	return Keychain{}, false
}
