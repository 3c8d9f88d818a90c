package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/store/drivers/sqlite"
	"github.com/grantlink/grantlink/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "grantlink_service_test.db") +
		"?_busy_timeout=5000&_journal_mode=WAL"

	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	codec, err := jwtx.NewCodec([]byte("service-test-signing-secret"))
	require.NoError(t, err)
	return codec
}

func fixedNow(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
