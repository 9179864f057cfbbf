package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-clew/clew/internal/contract"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded["a"])
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"name", "score"}, func(w *csv.Writer) error {
		return w.Write([]string{"demo", "4.2"})
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"name", "score"}, records[0])
	assert.Equal(t, []string{"demo", "4.2"}, records[1])
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(1)
	assert.Equal(t, "4.2", fmtFloat(4.21))
	assert.Equal(t, "%d", intFmt)

	fmtFloat2, _ := createFormatters(2)
	assert.Equal(t, "4.21", fmtFloat2(4.212))
}

func TestSectionHeader(t *testing.T) {
	assert.Equal(t, "📊 Overall", sectionHeader("Overall", "📊", true))
	assert.Equal(t, "Overall", sectionHeader("Overall", "📊", false))
}

func TestFormatTechnologies(t *testing.T) {
	assert.Equal(t, "None detected", formatTechnologies(nil))
	assert.Equal(t, "Go, Docker", formatTechnologies([]string{"Go", "Docker"}))
}

func TestGetMaxTablePathWidthOverride(t *testing.T) {
	cfg := &contract.Config{Width: 200}
	assert.Equal(t, 70, GetMaxTablePathWidth(cfg))

	cfg.Width = 70
	assert.Equal(t, 15, GetMaxTablePathWidth(cfg))

	cfg.Width = 100
	assert.Equal(t, 40, GetMaxTablePathWidth(cfg))
}
