package view

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/export"
	"github.com/MrJamesThe3rd/betawi/internal/seed"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

func seededAccounts(t *testing.T) *account.Service {
	t.Helper()

	s := store.New(nil)
	require.NoError(t, seed.Load(context.Background(), s))

	return account.NewService(s.Accounts, s.Transactions)
}

func TestWriteExport(t *testing.T) {
	accounts := seededAccounts(t)
	svc := export.NewService(accounts)
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	path, err := writeExport(context.Background(), svc, export.FormatCSV, account.TransactionFilter{}, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 6)
}

func TestWriteExport_UnknownFormatLeavesNoFile(t *testing.T) {
	svc := export.NewService(seededAccounts(t))
	dir := t.TempDir()

	_, err := writeExport(context.Background(), svc, export.Format("pdf"), account.TransactionFilter{}, dir)
	require.ErrorIs(t, err, errs.ErrValidation)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
