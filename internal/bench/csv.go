package bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

var header = []string{
	"Implementation", "DatasetSize", "ThreadCount", "ExecutionTimeMs",
	"MemoryUsedMB", "StartCpuLoadPct", "EndCpuLoadPct",
}

// AppendCSV 把 s 追加到 path，文件不存在时先写表头。
func AppendCSV(path string, s Sample) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open benchmark csv: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat benchmark csv: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(record(s)); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write benchmark csv: %w", err)
	}
	return f.Close()
}

func record(s Sample) []string {
	return []string{
		s.Implementation,
		strconv.Itoa(s.DatasetSize),
		strconv.Itoa(s.ThreadCount),
		strconv.FormatInt(s.Elapsed.Milliseconds(), 10),
		strconv.FormatFloat(s.MemoryUsedMB(), 'f', 2, 64),
		strconv.FormatFloat(s.StartCPULoad, 'f', 2, 64),
		strconv.FormatFloat(s.EndCPULoad, 'f', 2, 64),
	}
}

// ReadCSV 读取 AppendCSV 写入的所有样本
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read benchmark csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("benchmark csv is empty")
	}

	samples := make([]Sample, 0, len(rows)-1)
	for i, row := range rows[1:] {
		s, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("benchmark csv line %d: %w", i+2, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseRecord(row []string) (Sample, error) {
	var (
		s    Sample
		errs []error
	)
	atoi := func(v string) int {
		n, err := strconv.Atoi(v)
		errs = append(errs, err)
		return n
	}
	atof := func(v string) float64 {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, err)
		return f
	}

	s.Implementation = row[0]
	s.DatasetSize = atoi(row[1])
	s.ThreadCount = atoi(row[2])
	s.Elapsed = time.Duration(atoi(row[3])) * time.Millisecond
	s.MemoryUsed = int64(atof(row[4]) * 1024 * 1024)
	s.StartCPULoad = atof(row[5])
	s.EndCPULoad = atof(row[6])
	return s, errors.Join(errs...)
}
