package export

import (
	"bytes"
	"testing"
	"time"

	"hireflow/internal/domain/resume"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestScreeningBytes(t *testing.T) {
	rows := []resume.Ranked{
		{Filename: "ada.pdf", MatchPercent: 81.25, Rank: 1, Shortlisted: true},
		{Filename: "bob.docx", MatchPercent: 40.5, Rank: 2},
	}
	data, err := ScreeningBytes("Backend engineer", rows, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, RankedSheet}, f.GetSheetList())

	v, err := f.GetCellValue(RankedSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "ada.pdf", v)

	v, err = f.GetCellValue(RankedSheet, "D3")
	require.NoError(t, err)
	assert.Equal(t, "No", v)

	v, err = f.GetCellValue(SummarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 09:30:00", v)

	v, err = f.GetCellValue(SummarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestScreeningBytes_Empty(t *testing.T) {
	data, err := ScreeningBytes("", nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
