package filesink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Z3DDIEZ/HexVault/audit"
	"github.com/Z3DDIEZ/HexVault/layer"
)

func TestWriteAppendsOneLineOfJSONPerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	rec := audit.Record{
		Seq:         1,
		EventID:     uuid.New(),
		TimestampMS: 1000,
		Src:         "cell-a",
		Dst:         "cell-b",
		Layer:       layer.AccessGated,
	}
	require.NoError(t, s.Write(rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	require.True(t, scanner.Scan())

	// decode into a raw map so a wire-field rename can't hide behind the
	// local wireRecord struct's own tags.
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &raw))
	assert.Contains(t, raw, "ts_ms")
	assert.NotContains(t, raw, "timestamp_ms")
	assert.Equal(t, float64(1000), raw["ts_ms"])

	var decoded wireRecord
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &decoded))
	assert.Equal(t, uint64(1), decoded.Seq)
	assert.Equal(t, "cell-a", decoded.Src)
	assert.Equal(t, "cell-b", decoded.Dst)
	assert.Equal(t, "access_gated", decoded.Layer)
	assert.False(t, scanner.Scan())
}

func TestOpenResumesAppendOnExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Write(audit.Record{Seq: 1, EventID: uuid.New(), Src: "a", Dst: "b", Layer: layer.AtRest}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Write(audit.Record{Seq: 2, EventID: uuid.New(), Src: "b", Dst: "c", Layer: layer.AtRest}))
	require.NoError(t, s2.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	count := 0
	for scanner.Scan() {
		count++
	}
	assert.Equal(t, 2, count)
}
