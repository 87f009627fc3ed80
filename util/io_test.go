package util

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CVSSimpleTest struct {
	Name   string  `csv:"name"`
	Age    int     `csv:"age"`
	Height float32 `csv:"height"`
	Gender bool    `csv:"gender"`
}

func TestCSVSimple(t *testing.T) {
	rows, err := ReadCSVFromFile[CVSSimpleTest]("./testdata/simple.csv", ';')
	require.NoError(t, err)
	require.Equal(t, 3, rows.Length())

	assert.Equal(t, CVSSimpleTest{"John", 30, 170, false}, rows[0])
	assert.Equal(t, CVSSimpleTest{"Jane", 25, 160, true}, rows[1])
	assert.Equal(t, CVSSimpleTest{"Joe", 35, 175, true}, rows[2])
}

func TestCSVError(t *testing.T) {
	rows, err := ReadCSVFromFile[CVSSimpleTest]("./testdata/error.csv", ';')
	require.NoError(t, err)

	// row with an extra column is dropped
	require.Equal(t, 3, rows.Length())
	assert.Equal(t, CVSSimpleTest{"John", 30, 170.5, false}, rows[0])
	assert.Equal(t, CVSSimpleTest{"'Joe", 35, 175, true}, rows[1])
	assert.Equal(t, CVSSimpleTest{"", 28, 0, false}, rows[2])
}

func TestCSVMissingFile(t *testing.T) {
	_, err := ReadCSVFromFile[CVSSimpleTest]("./testdata/missing.csv", ';')
	assert.Error(t, err)
}

func TestCSVEarlyBreak(t *testing.T) {
	data := "name,age\nA,1\nB,2\nC,3\n"
	count := 0
	for range ReadCSV[CVSSimpleTest](strings.NewReader(data), ',') {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestCSVWriteRoundTrip(t *testing.T) {
	rows := []CVSSimpleTest{
		{"John", 30, 170.5, false},
		{"Jane", 25, 160, true},
	}
	buf := bytes.Buffer{}
	require.NoError(t, WriteCSV(&buf, rows, ';'))
	assert.Equal(t, "name;age;height;gender\nJohn;30;170.5;false\nJane;25;160;true\n", buf.String())

	file := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSVToFile(rows, file, ';'))
	read, err := ReadCSVFromFile[CVSSimpleTest](file, ';')
	require.NoError(t, err)
	assert.Equal(t, rows, []CVSSimpleTest(read))
}
