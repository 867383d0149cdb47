package predict_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"fjacquet/butterfly-ledger/cmd/predict"
	"fjacquet/butterfly-ledger/cmd/root"
	"fjacquet/butterfly-ledger/cmd/tx"
	"fjacquet/butterfly-ledger/cmd/yoy"
	"fjacquet/butterfly-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(predict.Cmd, yoy.Cmd, tx.Cmd)
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

func TestPredictCommand_Metadata(t *testing.T) {
	assert.Equal(t, "predict", predict.Cmd.Use)
	assert.Equal(t, "yoy", yoy.Cmd.Use)
}

func TestPredict(t *testing.T) {
	dir := newLedgerDir(t)

	out, err := run(t, dir, "predict")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	seed(t, dir)
	out, err = run(t, dir, "predict")
	require.NoError(t, err)

	var items []models.PredictedItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, models.PredictedItem{
		Name:             "Milk",
		LastBoughtDate:   "2025-03-01",
		DaysAgo:          7,
		PredictedDate:    "2025-03-08",
		AvgFrequencyDays: 7,
	}, items[0])

	// a month later the prediction is out of the window
	out, err = run(t, dir, "predict", "--today", "2025-04-20")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestYoY(t *testing.T) {
	dir := newLedgerDir(t)
	seed(t, dir)

	out, err := run(t, dir, "yoy")
	require.NoError(t, err)

	var stats models.YoYStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.True(t, stats.HasHistory)
	assert.Equal(t, "83", stats.CurrentMonthTotal.String())
	assert.Equal(t, "100", stats.LastYearMonthTotal.String())
	assert.Equal(t, "-17", stats.Variance.String())
	assert.Equal(t, "-17", stats.PercentageChange.String())
}
