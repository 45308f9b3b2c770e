package pore

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// testModelTable renders a full k=2 model table with synthetic levels.
func testModelTable() string {
	bases := "ACGT"
	var b strings.Builder
	b.WriteString("#ont r9 synthetic\nkmer\tlevel_mean\tlevel_stdv\n")
	for i := 0; i < 16; i++ {
		kmer := string([]byte{bases[i>>2], bases[i&3]})
		fmt.Fprintf(&b, "%s\t%.1f\t%.1f\n", kmer, 60.0+float64(i), 1.0+0.1*float64(i))
	}
	return b.String()
}

func TestLoadModel(t *testing.T) {
	dir, err := ioutil.TempDir("", "poremodel")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck

	path := filepath.Join(dir, "test.model")
	require.NoError(t, ioutil.WriteFile(path, []byte(testModelTable()), 0600))

	m, err := LoadModel(path)
	require.NoError(t, err)
	require.Equal(t, 2, m.K)
	require.Len(t, m.Levels, 16)
	require.Equal(t, GaussianParams{Mean: 60, Stdv: 1}, m.Levels[KmerRank("AA")])
	require.Equal(t, GaussianParams{Mean: 75, Stdv: 2.5}, m.Levels[KmerRank("TT")])
}

func TestLoadModelGzip(t *testing.T) {
	dir, err := ioutil.TempDir("", "poremodel")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck

	path := filepath.Join(dir, "test.model.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(testModelTable()))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	m, err := LoadModel(path)
	require.NoError(t, err)
	require.Equal(t, 2, m.K)
	require.Equal(t, GaussianParams{Mean: 61, Stdv: 1.1}, m.Levels[KmerRank("AC")])
}

func TestLoadModelErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "poremodel")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck

	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(data), 0600))
		return path
	}

	_, err = LoadModel(write("empty.model", "header only\n"))
	require.Error(t, err)

	_, err = LoadModel(write("short.model", "AA\t60.0\n"))
	require.Error(t, err)

	// One kmer of sixteen present.
	_, err = LoadModel(write("partial.model", "AA\t60.0\t1.0\n"))
	require.Error(t, err)

	_, err = LoadModel(write("dup.model", testModelTable()+"AA\t60.0\t1.0\n"))
	require.Error(t, err)
}

func TestScaledParams(t *testing.T) {
	m, err := parseModel(strings.NewReader(testModelTable()), "test")
	require.NoError(t, err)

	// Identity calibration.
	require.Equal(t, GaussianParams{Mean: 60, Stdv: 1}, m.ScaledParams(KmerRank("AA")))

	m.Scale = 1.5
	m.Shift = 2
	m.Var = 2
	require.Equal(t, GaussianParams{Mean: 92, Stdv: 2}, m.ScaledParams(KmerRank("AA")))
}
