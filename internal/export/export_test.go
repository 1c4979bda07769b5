package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gosfrc/internal/batch"
	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/alexiusacademia/gosfrc/internal/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func defaultProfile(t *testing.T) calibration.Profile {
	t.Helper()
	p, err := calibration.NewRegistry().Lookup("")
	require.NoError(t, err)
	return p
}

func TestBatchWorkbook(t *testing.T) {
	f, err := batch.Parse([]byte(`cases:
  - name: reference
  - name: nothing
    targets: []
  - name: blocked
    vf: 5
    allow_extrapolation: false
`))
	require.NoError(t, err)
	results, err := batch.Run(context.Background(), f.Cases, defaultProfile(t), 2)
	require.NoError(t, err)

	tables := BatchTables(results)
	require.Len(t, tables, 2)
	assert.Equal(t, "Results", tables[0].Sheet)
	assert.Equal(t, "Summary", tables[1].Sheet)
	require.Len(t, tables[0].Rows, 3)
	for _, row := range tables[0].Rows {
		assert.Len(t, row, len(tables[0].Headers))
	}

	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, WriteXLSX(path, tables...))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Results", "Summary"}, wb.GetSheetList())

	rows, err := wb.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "case", rows[0][0])
	assert.Equal(t, "fR,1 mean", rows[0][8])
	assert.Equal(t, "reference", rows[1][0])
	assert.Equal(t, "nothing", rows[2][0])
	assert.Contains(t, rows[2], results[1].Error)
	assert.Equal(t, "TRUE", rows[3][2], "blocked column")

	summary, err := wb.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, "fR,1", summary[1][0])
	assert.Equal(t, "1", summary[1][1])
}

func TestSweepTable(t *testing.T) {
	res, err := sweep.Run(sweep.Spec{Variable: sweep.Ffu, From: 0, To: 2000, Steps: 3},
		residual.DefaultEntry(), residual.Targets{Fr3: true}, defaultProfile(t))
	require.NoError(t, err)

	table := SweepTable(res, residual.Targets{Fr3: true})
	assert.Equal(t, []string{"ffu (MPa)", "in envelope", "fR,3 mean", "fR,3 characteristic", "fR,3 design", "fR,3 clamped", "violations"}, table.Headers)
	require.Len(t, table.Rows, 3)
	assert.Nil(t, table.Rows[0][2], "ffu = 0 has no fR,3")
	assert.NotNil(t, table.Rows[2][2])
	assert.Equal(t, false, table.Rows[0][1])
}

func TestWriteXLSXNoTables(t *testing.T) {
	assert.Error(t, WriteXLSX(filepath.Join(t.TempDir(), "empty.xlsx")))
}
