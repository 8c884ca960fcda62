package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/lsv/pkg/lsv"
	"github.com/charlie0129/lsv/pkg/version"
)

func TestDirArg(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{args: nil, want: "."},
		{args: []string{"data"}, want: "data"},
		{args: []string{"a", "b"}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := dirArg(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("dirArg(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("dirArg(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, version.Version+" "+version.GitCommit+"\n", out.String())
}

func TestPrintReportJSON(t *testing.T) {
	b := &lsv.Batch{
		Selection: lsv.Selection{Dropped: []lsv.DroppedFile{{Name: "ref.txt", Reason: lsv.DropLast}}},
		Results: []lsv.Result{{
			File:        "CB_LSV_C01_005mVmin.txt",
			Speed:       "005",
			PeakVoltage: 0.5,
			PeakCurrent: -1.0,
			Baseline:    lsv.BaselineResult{AtPeak: -0.25},
			HalfMax:     lsv.HalfMaxResult{Voltage: 0.6},
		}},
		Fit: lsv.TransferFit{Line: lsv.Line{Slope: 7, Intercept: 1}, Alpha: 0.2},
	}

	cmd := NewAnalyzeCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, printReportJSON(cmd, b))

	var got reportJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Files, 1)
	assert.Equal(t, "005", got.Files[0].SpeedMVPerMin)
	assert.InDelta(t, -0.75, got.Files[0].CorrectedPeakCurrent, 1e-12)
	assert.False(t, got.Files[0].FWHMVerified)
	assert.Equal(t, 7.0, got.Fit.Slope)
	assert.Equal(t, lsv.DropLast, got.Dropped[0].Reason)
}
