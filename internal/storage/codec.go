package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mmynk/evensplit/internal/models"
)

// Encode serializes a snapshot in the persisted JSON layout.
func Encode(snapshot models.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses and validates a persisted snapshot. Anything that does not
// decode or validate is reported as models.ErrMalformedSnapshot.
func Decode(data []byte) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedSnapshot, err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
