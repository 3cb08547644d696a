package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readCSV strips the BOM if present and parses the file.
func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	err := writer.WriteCSV("out.csv", WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}, {"3", "4"}},
	})
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(dir, "out.csv"))
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}, rows)
}

func TestWriteCSVBOM(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	err := writer.WriteCSV("bom.csv", WriteOptions{
		Headers:   []string{"a"},
		Records:   [][]string{{"1"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "bom.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSVAppend(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteSimpleCSV("append.csv", []string{"a"}, [][]string{{"1"}}))
	require.NoError(t, writer.WriteCSV("append.csv", WriteOptions{
		Records: [][]string{{"2"}},
		Append:  true,
	}))

	rows := readCSV(t, filepath.Join(dir, "append.csv"))
	assert.Equal(t, [][]string{{"a"}, {"1"}, {"2"}}, rows)
}

func TestWriteCSVCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	err := writer.WriteSimpleCSV(filepath.Join("nested", "deep", "out.csv"), []string{"a"}, nil)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "nested", "deep", "out.csv"))
}

func TestWriteCSVAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "abs.csv")

	// Base dir points elsewhere; the absolute path wins.
	writer := NewCSVWriter(filepath.Join(dir, "unused"))
	require.NoError(t, writer.WriteSimpleCSV(target, []string{"a"}, nil))
	assert.FileExists(t, target)
}

func TestWriteCSVQuoting(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	err := writer.WriteSimpleCSV("quoted.csv", []string{"name"}, [][]string{
		{`O'Brien, "Bob"`},
	})
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(dir, "quoted.csv"))
	assert.Equal(t, `O'Brien, "Bob"`, rows[1][0])
}
