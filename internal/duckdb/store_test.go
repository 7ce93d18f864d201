package duckdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/hapmap/internal/profile"
	"github.com/inodb/hapmap/internal/snp"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testCollection() *profile.Collection {
	c := profile.NewCollection("mtDNA")
	c.Add("Princess Irene", "ACGT")
	c.Add("Prince Fred", "ACGA")
	c.Add("Grigori Rasputin", "ACGT")
	return c
}

func TestOpenClose(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestOpen_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hapmap.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

// --- Sequence tests ---

func TestWriteAndLoadCollection(t *testing.T) {
	s := openInMemory(t)

	c := testCollection()
	require.NoError(t, s.WriteCollection(c))

	got, err := s.LoadCollection("mtDNA")
	require.NoError(t, err)
	assert.Equal(t, c.Records, got.Records)

	other, err := s.LoadCollection("Y")
	require.NoError(t, err)
	assert.Empty(t, other.Records)
}

func TestWriteCollection_Replaces(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteCollection(testCollection()))

	c := profile.NewCollection("mtDNA")
	c.Add("Olga Romanov", "TTTT")
	require.NoError(t, s.WriteCollection(c))

	got, err := s.LoadCollection("mtDNA")
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "Olga Romanov", got.Records[0].Label)
}

// --- Site tests ---

func TestWriteAndLookupSites(t *testing.T) {
	s := openInMemory(t)

	sites := snp.CallVariants(testCollection())
	require.Len(t, sites, 1)
	r := &snp.Report{Locus: "mtDNA", Sites: sites}
	require.NoError(t, s.WriteReport(r))

	got, err := s.LookupSites("mtDNA")
	require.NoError(t, err)
	require.Len(t, got.Sites, 1)

	site := got.Sites[0]
	assert.Equal(t, 4, site.Position)
	assert.Equal(t, "A/T", site.AlleleString())
	assert.Equal(t, byte('T'), site.Major)
	assert.Equal(t, byte('A'), site.Minor)
	assert.Equal(t, map[byte]int{'A': 1, 'T': 2}, site.Counts)
	assert.Equal(t, "0.33", site.MinorFreqString())
	assert.Equal(t, sites[0].Fields(), site.Fields())
}

func TestWriteReport_DedupAndOrder(t *testing.T) {
	s := openInMemory(t)

	c := profile.NewCollection("Y")
	c.Add("a", "ACGTA")
	c.Add("b", "TCCTG")
	sites := snp.CallVariants(c)
	require.Len(t, sites, 3)

	// Reverse order plus a duplicate
	in := []snp.Site{sites[2], sites[1], sites[0], sites[2]}
	require.NoError(t, s.WriteReport(&snp.Report{Locus: "Y", Sites: in}))

	got, err := s.LookupSites("Y")
	require.NoError(t, err)
	require.Len(t, got.Sites, 3)
	assert.Equal(t, 1, got.Sites[0].Position)
	assert.Equal(t, 3, got.Sites[1].Position)
	assert.Equal(t, 5, got.Sites[2].Position)
}

func TestWriteReport_EmptyClearsLocus(t *testing.T) {
	s := openInMemory(t)

	r := &snp.Report{Locus: "mtDNA", Sites: snp.CallVariants(testCollection())}
	require.NoError(t, s.WriteReport(r))
	require.NoError(t, s.WriteReport(&snp.Report{Locus: "mtDNA"}))

	got, err := s.LookupSites("mtDNA")
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.NotNil(t, got.Sites)
}

func TestClear(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteCollection(testCollection()))
	require.NoError(t, s.WriteReport(&snp.Report{Locus: "mtDNA", Sites: snp.CallVariants(testCollection())}))
	require.NoError(t, s.Clear())

	c, err := s.LoadCollection("mtDNA")
	require.NoError(t, err)
	assert.Empty(t, c.Records)

	r, err := s.LookupSites("mtDNA")
	require.NoError(t, err)
	assert.Empty(t, r.Sites)
}

// --- Run metadata tests ---

func TestRecordAndLastRun(t *testing.T) {
	s := openInMemory(t)

	_, ok, err := s.LastRun("input.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	now := time.Now()
	older := FileFingerprint{Path: "input.txt", Size: 100, ModTime: now.Add(-time.Hour)}
	newer := FileFingerprint{Path: "input.txt", Size: 200, ModTime: now}
	require.NoError(t, s.RecordRun(older, now.Add(-time.Minute)))
	require.NoError(t, s.RecordRun(newer, now))

	fp, ok, err := s.LastRun("input.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(200), fp.Size)
	assert.True(t, fp.Matches(newer))
	assert.False(t, fp.Matches(older))
}

func TestStatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("ACGT\n"), 0644))

	fp, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, fp.Path)
	assert.Equal(t, int64(5), fp.Size)

	_, err = StatFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
