package store

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// snapshotVersion is bumped when the snapshot layout changes.
const snapshotVersion = 1

// Snapshot is the stored leaf state of one tag.
type Snapshot struct {
	Version  int               `cbor:"1,keyasint"`
	DataType string            `cbor:"2,keyasint"`
	Values   map[string]string `cbor:"3,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Canonical encoding keeps snapshots of equal tags byte-identical.
	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic("failed to create CBOR encoder: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic("failed to create CBOR decoder: " + err.Error())
	}
}

func encodeSnapshot(s Snapshot) ([]byte, error) {
	s.Version = snapshotVersion
	data, err := encMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := decMode.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("decode snapshot: unsupported version %d", s.Version)
	}
	if s.Values == nil {
		s.Values = map[string]string{}
	}
	return s, nil
}
