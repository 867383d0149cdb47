package dashboard_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"fjacquet/butterfly-ledger/cmd/dashboard"
	"fjacquet/butterfly-ledger/cmd/remind"
	"fjacquet/butterfly-ledger/cmd/root"
	"fjacquet/butterfly-ledger/cmd/tx"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(dashboard.Cmd, remind.Cmd, tx.Cmd)
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
	root.Cmd.SetArgs(append([]string{"--data-dir", dir, "--format", "json", "--today", "2025-03-08"}, args...))
	err := root.Cmd.Execute()
	return out.String(), err
}

func seed(t *testing.T, dir string) {
	t.Helper()
	for _, args := range [][]string{
		{"-d", "Milk", "-a", "3", "-c", "Food", "--date", "2025-02-15"},
		{"-d", "Milk", "-a", "3", "-c", "Food", "--date", "2025-02-22"},
		{"-d", "Milk", "-a", "3", "-c", "Food", "--date", "2025-03-01"},
		{"-d", "Dinner", "-a", "100", "-c", "Food", "--date", "2024-03-10"},
		{"-d", "Electric bill", "-a", "80", "-c", "Utilities", "--date", "2025-03-09"},
	} {
		_, err := run(t, dir, append([]string{"tx", "add"}, args...)...)
		require.NoError(t, err)
	}
}

func TestDashboardCommand_Metadata(t *testing.T) {
	assert.Equal(t, "dashboard", dashboard.Cmd.Use)
	assert.Equal(t, "remind", remind.Cmd.Use)
	assert.NotNil(t, remind.Cmd.Flags().Lookup("dry-run"))
}

func TestDashboard(t *testing.T) {
	dir := newLedgerDir(t)
	_, err := run(t, dir, "dashboard", "--today", "2025-02-01")
	require.NoError(t, err)
	seed(t, dir)

	out, err := run(t, dir, "dashboard")
	require.NoError(t, err)

	var d models.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "2025-03-08", d.Today)
	require.NotNil(t, d.Rollover)
	assert.Equal(t, "1994", d.Rollover.Surplus.String())
	assert.Equal(t, "3994", d.Budget.MonthlyLimit.String())
	assert.Len(t, d.Predictions, 1)
	assert.Len(t, d.Reminders, 1)
	assert.Equal(t, "Dream Vacation", d.SavingsGoal.Name)

	// the rollover only happens once
	out, err = run(t, dir, "dashboard")
	require.NoError(t, err)
	d = models.Dashboard{}
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Nil(t, d.Rollover)
	assert.Equal(t, "3994", d.Budget.MonthlyLimit.String())
}

func TestRemind(t *testing.T) {
	dir := newLedgerDir(t)
	seed(t, dir)

	out, err := run(t, dir, "remind", "--dry-run")
	require.NoError(t, err)
	var res report.RemindersOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Reminders, 1)
	assert.Equal(t, "Electric bill", res.Reminders[0].Description)
	assert.Empty(t, res.Delivered)

	out, err = run(t, dir, "remind")
	require.NoError(t, err)
	res = report.RemindersOutput{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Delivered, 1)

	out, err = run(t, dir, "remind")
	require.NoError(t, err)
	res = report.RemindersOutput{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Empty(t, res.Reminders)
}
