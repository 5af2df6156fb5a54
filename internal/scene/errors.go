package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAsset marks an asset record without any id. The asset is skipped.
	ErrMalformedAsset = errors.New("malformed asset")
	// ErrMalformedOverlay marks an overlay record with an unusable start time. The overlay is skipped.
	ErrMalformedOverlay = errors.New("malformed overlay")
	// ErrInvalidTimeWindow marks a negative or non-finite duration that was clamped.
	ErrInvalidTimeWindow = errors.New("invalid time window")
)

// Issue describes a record that was skipped or repaired during normalization.
// Issues never abort composition.
type Issue struct {
	Scene  string
	Record string // "scene", "asset", "effect" or "overlay"
	Index  int
	ID     string
	Err    error
}

func (i Issue) Error() string {
	if i.ID != "" {
		return fmt.Sprintf("scene %s: %s[%d] %s: %v", i.Scene, i.Record, i.Index, i.ID, i.Err)
	}
	return fmt.Sprintf("scene %s: %s[%d]: %v", i.Scene, i.Record, i.Index, i.Err)
}

func (i Issue) Unwrap() error {
	return i.Err
}
