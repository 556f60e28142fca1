package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.csv")
	content := "Target Name,Announcement Date,Deal Value\n" +
		"Acme Corp,2024-03-01,$150M\n" +
		",,\n" +
		"Initech,2024-04-01,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 2, "fully empty rows are dropped")

	assert.Equal(t, "Acme Corp", rows[0]["Target Name"])
	assert.Equal(t, "$150M", rows[0]["Deal Value"])
	assert.Equal(t, "Initech", rows[1]["Target Name"])
	assert.Equal(t, "", rows[1]["Deal Value"])
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Company Name", "Ticker", "Index Name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"Acme Corp", "ACME", "S&P 500"}))
	require.NoError(t, f.SaveAs(path))

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ACME", rows[0]["Ticker"])
	assert.Equal(t, "S&P 500", rows[0]["Index Name"])
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
