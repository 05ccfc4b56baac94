package storage

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	return NewGateway(NewMemoryStore(), zerolog.Nop())
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGatewayRoundTrip(t *testing.T) {
	g := newTestGateway(t)

	require.True(t, g.Save(KeySettings, payload{Name: "go", Count: 3}))

	var got payload
	require.True(t, g.Load(KeySettings, &got))
	assert.Equal(t, payload{Name: "go", Count: 3}, got)
}

func TestGatewayLoadMissingLeavesDefault(t *testing.T) {
	g := newTestGateway(t)

	got := payload{Name: "default"}
	require.False(t, g.Load(KeySettings, &got))
	assert.Equal(t, "default", got.Name)
}

func TestGatewayLoadCorruptLeavesDefault(t *testing.T) {
	g := newTestGateway(t)
	require.NoError(t, g.Store().Set(KeySettings, "{not json"))

	got := payload{Name: "default"}
	require.False(t, g.Load(KeySettings, &got))
	assert.Equal(t, "default", got.Name)
}

func TestGatewayRemove(t *testing.T) {
	g := newTestGateway(t)
	require.True(t, g.Save(KeyTheme, "dark"))
	require.True(t, g.Remove(KeyTheme))

	var mode string
	assert.False(t, g.Load(KeyTheme, &mode))
}

func TestGatewayExportAllIncludesNullForMissing(t *testing.T) {
	g := newTestGateway(t)
	require.True(t, g.Save(KeyTheme, "dark"))

	export := g.ExportAll()
	assert.Len(t, export, len(KnownKeys()))
	assert.Equal(t, json.RawMessage(`"dark"`), export[KeyTheme])
	assert.Equal(t, json.RawMessage("null"), export[KeyTechnologies])
	assert.Equal(t, json.RawMessage("null"), export[KeySettings])
}

func TestGatewayImportAllIgnoresUnknownKeys(t *testing.T) {
	g := newTestGateway(t)

	require.True(t, g.ImportAll(map[string]json.RawMessage{
		KeyTheme:    json.RawMessage(`"dark"`),
		"malicious": json.RawMessage(`"payload"`),
	}))

	var mode string
	require.True(t, g.Load(KeyTheme, &mode))
	assert.Equal(t, "dark", mode)

	_, ok, err := g.Store().Get("malicious")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGatewayInfoSizes(t *testing.T) {
	g := newTestGateway(t)
	// Stored as `"ab"`: 4 UTF-16 code units, 8 bytes.
	require.True(t, g.Save(KeyTheme, "ab"))

	info := g.Info()
	assert.Equal(t, 1, info.TotalKeys)
	assert.Equal(t, 8, info.TotalBytes)
	assert.Equal(t, KeyInfo{SizeBytes: 8, HasValue: true}, info.ByKey[KeyTheme])
}

func TestGatewayInfoCountsAstralRunesAsTwoUnits(t *testing.T) {
	g := newTestGateway(t)
	// U+1F600 encodes as a surrogate pair: `"x"` wraps it in two quote
	// units, so 2+2 units = 8 bytes.
	require.NoError(t, g.Store().Set(KeyTheme, `"`+string(rune(0x1F600))+`"`))

	info := g.Info()
	assert.Equal(t, 8, info.ByKey[KeyTheme].SizeBytes)
}

func TestGatewayBackupRestore(t *testing.T) {
	g := newTestGateway(t)
	require.True(t, g.Save(KeyTheme, "dark"))

	key, ok := g.CreateBackup()
	require.True(t, ok)

	require.True(t, g.Save(KeyTheme, "light"))
	require.True(t, g.RestoreFromBackup(key))

	var mode string
	require.True(t, g.Load(KeyTheme, &mode))
	assert.Equal(t, "dark", mode)
}

func TestGatewayRestoreMissingBackup(t *testing.T) {
	g := newTestGateway(t)
	assert.False(t, g.RestoreFromBackup(BackupPrefix+"12345"))
}

func TestGatewayRestoreBackupWithoutData(t *testing.T) {
	g := newTestGateway(t)
	require.NoError(t, g.Store().Set(BackupPrefix+"12345", `{"timestamp":"2025-01-01T00:00:00Z"}`))
	assert.False(t, g.RestoreFromBackup(BackupPrefix+"12345"))
}

func TestGatewayBackupKeysNewestFirst(t *testing.T) {
	g := newTestGateway(t)
	require.NoError(t, g.Store().Set(BackupPrefix+"1000", "{}"))
	require.NoError(t, g.Store().Set(BackupPrefix+"2000", "{}"))
	require.True(t, g.Save(KeyTheme, "dark"))

	keys := g.BackupKeys()
	assert.Equal(t, []string{BackupPrefix + "2000", BackupPrefix + "1000"}, keys)
}

func TestGatewayCleanOldBackups(t *testing.T) {
	g := newTestGateway(t)

	old := time.Now().AddDate(0, 0, -30)
	fresh := time.Now().Add(-time.Hour)

	oldKey := fmt.Sprintf("%s%d", BackupPrefix, old.UnixMilli())
	freshKey := fmt.Sprintf("%s%d", BackupPrefix, fresh.UnixMilli())
	require.True(t, g.Save(oldKey, backupPayload{Timestamp: old, Data: map[string]json.RawMessage{}}))
	require.True(t, g.Save(freshKey, backupPayload{Timestamp: fresh, Data: map[string]json.RawMessage{}}))

	removed := g.CleanOldBackups(7)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{freshKey}, g.BackupKeys())
}

func TestGatewayCleanOldBackupsDefaultRetention(t *testing.T) {
	g := newTestGateway(t)

	old := time.Now().AddDate(0, 0, -8)
	key := fmt.Sprintf("%s%d", BackupPrefix, old.UnixMilli())
	require.True(t, g.Save(key, backupPayload{Timestamp: old, Data: map[string]json.RawMessage{}}))

	assert.Equal(t, 1, g.CleanOldBackups(0))
}
