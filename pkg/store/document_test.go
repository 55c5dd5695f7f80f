package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskvault/taskvault/pkg/task"
)

func seedDocument(t *testing.T) *document {
	tk, err := task.New("Implement auth", "Login with JWT", "joao", task.WithID("task-1"))
	require.NoError(t, err, "creating task")
	return &document{Records: []*task.Task{tk}}
}

func TestComputeChecksum(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		doc := seedDocument(t)
		first, err := computeChecksum(doc)
		require.NoError(t, err, "computing checksum")
		second, err := computeChecksum(doc)
		require.NoError(t, err, "recomputing checksum")
		assert.Equal(t, first, second, "same content must hash identically")
		assert.Len(t, first, 64, "hex-encoded SHA-256 digest")
	})

	t.Run("ignores_embedded_checksum", func(t *testing.T) {
		doc := seedDocument(t)
		before, err := computeChecksum(doc)
		require.NoError(t, err, "computing checksum")

		doc.Checksum = "anything"
		after, err := computeChecksum(doc)
		require.NoError(t, err, "recomputing with checksum set")
		assert.Equal(t, before, after, "checksum field is excluded from the digest")
	})

	t.Run("changes_with_content", func(t *testing.T) {
		doc := seedDocument(t)
		before, err := computeChecksum(doc)
		require.NoError(t, err, "computing checksum")

		doc.Records[0].Title = "Tampered"
		after, err := computeChecksum(doc)
		require.NoError(t, err, "recomputing after mutation")
		assert.NotEqual(t, before, after, "any content change must change the digest")
	})
}

func TestVerifyRawDocument(t *testing.T) {
	marshal := func(t *testing.T, doc *document) []byte {
		checksum, err := computeChecksum(doc)
		require.NoError(t, err, "computing checksum")
		doc.Checksum = checksum
		data, err := json.Marshal(doc)
		require.NoError(t, err, "encoding document")
		return data
	}

	t.Run("valid_document_verifies", func(t *testing.T) {
		data := marshal(t, seedDocument(t))
		assert.NoError(t, verifyRawDocument("tasks.json", data), "freshly checksummed document must verify")
	})

	t.Run("field_order_does_not_matter", func(t *testing.T) {
		data := marshal(t, seedDocument(t))

		// Re-serialize through a generic map: key order in the file changes,
		// the canonical digest must not.
		var generic map[string]any
		require.NoError(t, json.Unmarshal(data, &generic), "decoding document")
		reordered, err := json.Marshal(generic)
		require.NoError(t, err, "re-encoding document")

		assert.NoError(t, verifyRawDocument("tasks.json", reordered), "serialization order must not affect verification")
	})

	t.Run("altered_value_fails", func(t *testing.T) {
		data := marshal(t, seedDocument(t))

		var generic map[string]any
		require.NoError(t, json.Unmarshal(data, &generic), "decoding document")
		generic["records"].([]any)[0].(map[string]any)["version"] = 99
		tampered, err := json.Marshal(generic)
		require.NoError(t, err, "re-encoding tampered document")

		var ierr *IntegrityError
		assert.ErrorAs(t, verifyRawDocument("tasks.json", tampered), &ierr, "altered content must fail verification")
	})

	t.Run("missing_checksum_fails", func(t *testing.T) {
		doc := seedDocument(t)
		data, err := json.Marshal(doc)
		require.NoError(t, err, "encoding document without checksum")

		var ierr *IntegrityError
		require.ErrorAs(t, verifyRawDocument("tasks.json", data), &ierr, "missing checksum must fail")
		assert.Empty(t, ierr.Stored, "no stored digest to report")
	})
}
