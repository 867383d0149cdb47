package budget_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"fjacquet/butterfly-ledger/cmd/budget"
	"fjacquet/butterfly-ledger/cmd/root"
	"fjacquet/butterfly-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(budget.Cmd)
}

func newLedgerDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	t.Cleanup(func() { _ = root.Shutdown() })
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root.ResetFlags(root.Cmd)
	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&out)
	root.Cmd.SetArgs(append([]string{"--data-dir", dir, "--format", "json"}, args...))
	err := root.Cmd.Execute()
	return out.String(), err
}

func TestBudgetCommand_Metadata(t *testing.T) {
	assert.Equal(t, "budget", budget.Cmd.Use)
	assert.Len(t, budget.Cmd.Commands(), 2)
}

func TestBudgetShowAndSet(t *testing.T) {
	dir := newLedgerDir(t)

	out, err := run(t, dir, "budget", "show", "--today", "2025-03-08")
	require.NoError(t, err)
	var b models.BudgetState
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.Equal(t, "2000", b.BaseAmount.String())
	assert.Equal(t, "2025-03", b.LastRolloverMonth)

	out, err = run(t, dir, "budget", "set", "2500", "--today", "2025-03-08")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.Equal(t, "2500", b.MonthlyLimit.String())
	assert.True(t, b.IsConsistent())

	_, err = run(t, dir, "budget", "set", "lots")
	assert.Error(t, err)
}

func TestBudgetShowTable(t *testing.T) {
	dir := newLedgerDir(t)
	root.ResetFlags(root.Cmd)
	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetArgs([]string{"--data-dir", dir, "--today", "2025-03-08", "budget", "show"})
	require.NoError(t, root.Cmd.Execute())
	assert.Contains(t, out.String(), "Monthly limit")
	assert.Contains(t, out.String(), "$2000.00")
}
