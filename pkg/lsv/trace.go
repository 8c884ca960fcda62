package lsv

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Sample is one row of an LSV export.
// Units:
// - Time: s
// - Voltage: V
// - Current: mA
type Sample struct {
	Cycle   float64 `json:"cycle"`
	Time    float64 `json:"time"`
	Voltage float64 `json:"voltage"`
	Current float64 `json:"current"`
}

// Trace is the ordered sample sequence read from one file. It is not modified
// after loading; slicing helpers return new traces sharing the backing array.
type Trace struct {
	Name    string
	Samples []Sample
}

func (t Trace) Len() int {
	return len(t.Samples)
}

// Voltages returns a copy of the voltage column.
func (t Trace) Voltages() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Voltage
	}
	return out
}

// Currents returns a copy of the current column.
func (t Trace) Currents() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Current
	}
	return out
}

func (t Trace) slice(from, to int) Trace {
	return Trace{Name: t.Name, Samples: t.Samples[from:to]}
}

// ParseTrace reads a tab (or whitespace) delimited export. The first line is
// a header and is skipped. Every other non-blank line must hold at least four
// numeric columns: cycle index, time, voltage and current. Extra columns are
// ignored.
func ParseTrace(r io.Reader, name string) (Trace, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	trace := Trace{Name: name}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			return Trace{}, pkgerrors.Wrapf(ErrMalformedRow, "%s:%d: expected 4 columns, got %d", name, lineNo, len(fields))
		}

		var vals [4]float64
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return Trace{}, pkgerrors.Wrapf(ErrMalformedRow, "%s:%d: column %d: %v", name, lineNo, i+1, err)
			}
			vals[i] = v
		}

		trace.Samples = append(trace.Samples, Sample{
			Cycle:   vals[0],
			Time:    vals[1],
			Voltage: vals[2],
			Current: vals[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return Trace{}, pkgerrors.Wrapf(err, "failed to read %s", name)
	}

	if len(trace.Samples) == 0 {
		return Trace{}, pkgerrors.Wrapf(ErrEmptyTrace, "%s", name)
	}

	return trace, nil
}

// LoadTrace opens and parses the file at path. The trace is named after the
// base name of the file.
func LoadTrace(path string) (Trace, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Trace{}, pkgerrors.Wrapf(err, "failed to open file %s", path)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", path)
		}
	}(fp)

	return ParseTrace(fp, filepath.Base(path))
}
