package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/taskvault/taskvault/pkg/task"
	"gitlab.com/tozd/go/errors"
)

// 📚 document is the persisted unit: every record plus a checksum over the
// canonical serialization of everything except the checksum itself. Record
// order is insertion order and is preserved across save/load.
type document struct {
	Records  []*task.Task `json:"records"`
	Checksum string       `json:"checksum"`
}

func emptyDocument() *document {
	return &document{Records: []*task.Task{}}
}

// computeChecksum hashes the document content minus the checksum field. The
// records are round-tripped through generic JSON values so the final
// serialization has map keys sorted at every level, making the byte
// sequence independent of struct field order.
func computeChecksum(doc *document) (string, error) {
	raw, err := json.Marshal(doc.Records)
	if err != nil {
		return "", errors.Errorf("serializing records: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", errors.Errorf("normalizing records: %w", err)
	}

	canonical, err := json.Marshal(map[string]any{"records": generic})
	if err != nil {
		return "", errors.Errorf("canonicalizing document: %w", err)
	}

	hash := sha256.Sum256(canonical)
	return hex.EncodeToString(hash[:]), nil
}

// verifyRawDocument checks the stored checksum against a digest recomputed
// from the raw file content, so any altered byte of the non-checksum
// content is caught, not just bytes that survive a struct round-trip. A
// missing or mismatched checksum is an IntegrityError.
func verifyRawDocument(path string, data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Errorf("parsing document: %w", err)
	}

	stored, _ := raw["checksum"].(string)
	delete(raw, "checksum")

	canonical, err := json.Marshal(raw)
	if err != nil {
		return errors.Errorf("canonicalizing document: %w", err)
	}

	hash := sha256.Sum256(canonical)
	computed := hex.EncodeToString(hash[:])

	if stored == "" {
		return &IntegrityError{Path: path, Computed: computed}
	}
	if stored != computed {
		return &IntegrityError{Path: path, Stored: stored, Computed: computed}
	}
	return nil
}
