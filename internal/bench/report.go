package bench

import (
	"cmp"
	"fmt"
	"html/template"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
)

// series 是一种实现在不同线程数下的一组数据点
type series struct {
	Label  string  `json:"label"`
	Data   []point `json:"data"`
	Fill   bool    `json:"fill"`
	Border int     `json:"borderWidth"`
}

type point struct {
	X int     `json:"x"`
	Y float64 `json:"y"`
}

type row struct {
	Sample
	Size   string
	Memory string
}

type chart struct {
	ID     string
	Title  string
	YLabel string
	Series []series
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Benchmark Report</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script></head><body>
<h1>Benchmark Results</h1>
<h2>Data Table</h2>
<table border="1"><thead><tr>
<th>Implementation</th><th>DatasetSize</th><th>ThreadCount</th><th>ExecutionTimeMs</th>
<th>MemoryUsed</th><th>StartCpuLoadPct</th><th>EndCpuLoadPct</th>
</tr></thead><tbody>
{{- range .Rows}}
<tr><td>{{.Implementation}}</td><td>{{.Size}}</td><td>{{.ThreadCount}}</td><td>{{.Elapsed.Milliseconds}}</td><td>{{.Memory}}</td><td>{{printf "%.2f" .StartCPULoad}}</td><td>{{printf "%.2f" .EndCPULoad}}</td></tr>
{{- end}}
</tbody></table>
{{- range .Charts}}
<h2>{{.Title}}</h2>
<canvas id="{{.ID}}" width="800" height="400"></canvas>
<script>
new Chart(document.getElementById({{.ID}}).getContext("2d"), {
  type: "line",
  data: {datasets: {{.Series}}},
  options: {scales: {x: {type: "linear", title: {display: true, text: "Threads"}}, y: {title: {display: true, text: {{.YLabel}}}}}}
});
</script>
{{- end}}
</body></html>
`))

// WriteHTML 生成包含数据表和折线图的报告：
// 每种实现的执行时间、内存和结束时 CPU 负载随线程数的变化。
func WriteHTML(w io.Writer, samples []Sample) error {
	rows := make([]row, len(samples))
	for i, s := range samples {
		rows[i] = row{Sample: s, Size: humanize.Comma(int64(s.DatasetSize)), Memory: formatBytes(s.MemoryUsed)}
	}

	data := struct {
		Rows   []row
		Charts []chart
	}{
		Rows: rows,
		Charts: []chart{
			{ID: "execChart", Title: "Execution Time vs Thread Count", YLabel: "Time (ms)",
				Series: seriesBy(samples, func(s Sample) float64 { return float64(s.Elapsed.Milliseconds()) })},
			{ID: "memChart", Title: "Memory Usage vs Thread Count", YLabel: "Memory Used (MB)",
				Series: seriesBy(samples, Sample.MemoryUsedMB)},
			{ID: "cpuChart", Title: "CPU Load End vs Thread Count", YLabel: "End CPU Load (%)",
				Series: seriesBy(samples, func(s Sample) float64 { return s.EndCPULoad })},
		},
	}
	if err := reportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render benchmark report: %w", err)
	}
	return nil
}

// seriesBy 按实现分组，组内按线程数排序
func seriesBy(samples []Sample, y func(Sample) float64) []series {
	var out []series
	index := make(map[string]int)
	for _, s := range samples {
		i, ok := index[s.Implementation]
		if !ok {
			i = len(out)
			index[s.Implementation] = i
			out = append(out, series{Label: s.Implementation, Border: 2})
		}
		out[i].Data = append(out[i].Data, point{X: s.ThreadCount, Y: y(s)})
	}
	for i := range out {
		slices.SortStableFunc(out[i].Data, func(a, b point) int { return cmp.Compare(a.X, b.X) })
	}
	return out
}

func formatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
