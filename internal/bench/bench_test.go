package bench

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	boom := errors.New("boom")
	var sink [][]byte

	s, err := Measure("forkjoin", 1000, 8, func() error {
		for i := 0; i < 64; i++ {
			sink = append(sink, make([]byte, 64*1024))
		}
		time.Sleep(5 * time.Millisecond)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "forkjoin", s.Implementation)
	assert.Equal(t, 1000, s.DatasetSize)
	assert.Equal(t, 8, s.ThreadCount)
	assert.GreaterOrEqual(t, s.Elapsed, 5*time.Millisecond)
	assert.GreaterOrEqual(t, s.CPUTime, time.Duration(0))
	assert.GreaterOrEqual(t, s.StartCPULoad, 0.0)
	assert.GreaterOrEqual(t, s.EndCPULoad, 0.0)
	assert.Len(t, sink, 64)
}

func TestCSV_AppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark_results.csv")

	samples := []Sample{
		{Implementation: "sequential", DatasetSize: 100, ThreadCount: 1, Elapsed: 1500 * time.Millisecond,
			MemoryUsed: 3 * 1024 * 1024, StartCPULoad: 1.5, EndCPULoad: 12.25},
		{Implementation: "fanout", DatasetSize: 100, ThreadCount: 8, Elapsed: 320 * time.Millisecond,
			MemoryUsed: -1024 * 1024, StartCPULoad: 2, EndCPULoad: 80},
	}
	for _, s := range samples {
		require.NoError(t, AppendCSV(path, s))
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Implementation,DatasetSize,ThreadCount,ExecutionTimeMs,MemoryUsedMB,StartCpuLoadPct,EndCpuLoadPct", lines[0])
	assert.Equal(t, "sequential,100,1,1500,3.00,1.50,12.25", lines[1])
	assert.Equal(t, "fanout,100,8,320,-1.00,2.00,80.00", lines[2])

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader(strings.Join(header, ",") + "\nqueue,ten,1,1,1,1,1\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = ReadCSV(strings.NewReader("a,b\n"))
	assert.Error(t, err)
}

func TestWriteHTML(t *testing.T) {
	samples := []Sample{
		{Implementation: "queue", DatasetSize: 100000, ThreadCount: 8, Elapsed: 900 * time.Millisecond, MemoryUsed: 2 << 20},
		{Implementation: "queue", DatasetSize: 100000, ThreadCount: 2, Elapsed: 2 * time.Second, MemoryUsed: 1 << 20},
		{Implementation: "<pool>", DatasetSize: 100000, ThreadCount: 4, Elapsed: time.Second, MemoryUsed: -(1 << 20)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, samples))
	out := buf.String()

	assert.Contains(t, out, "<h1>Benchmark Results</h1>")
	assert.Contains(t, out, "<td>100,000</td>")
	assert.Contains(t, out, "<td>2.0 MiB</td>")
	assert.Contains(t, out, "<td>-1.0 MiB</td>")
	assert.Contains(t, out, "&lt;pool&gt;")
	assert.NotContains(t, out, "<pool>")
	for _, id := range []string{"execChart", "memChart", "cpuChart"} {
		assert.Contains(t, out, `id="`+id+`"`)
	}
}

func TestSeriesBy(t *testing.T) {
	samples := []Sample{
		{Implementation: "queue", ThreadCount: 8, EndCPULoad: 80},
		{Implementation: "pool", ThreadCount: 2, EndCPULoad: 20},
		{Implementation: "queue", ThreadCount: 2, EndCPULoad: 30},
	}
	got := seriesBy(samples, func(s Sample) float64 { return s.EndCPULoad })

	require.Len(t, got, 2)
	assert.Equal(t, "queue", got[0].Label)
	assert.Equal(t, []point{{X: 2, Y: 30}, {X: 8, Y: 80}}, got[0].Data)
	assert.Equal(t, "pool", got[1].Label)
	assert.Equal(t, []point{{X: 2, Y: 20}}, got[1].Data)
}
