// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/ranking"
	"github.com/katalvlaran/matbench/report"
)

func sampleRecords(t *testing.T) []bench.ResultRecord {
	t.Helper()
	ok, err := bench.NewTrial("gonum", bench.OpQR, 128, 7, true, 1e-10, 99)
	require.NoError(t, err)
	plain, err := bench.NewTrial("lvdense", bench.OpMult, 64, 3, false, 0, 1)
	require.NoError(t, err)

	return []bench.ResultRecord{
		bench.NewSuccess(ok, 1234567891*time.Nanosecond, 65536, &bench.Verdict{Class: bench.NoError, Residual: 3.1415926535e-15}),
		bench.NewSuccess(ok, 17*time.Millisecond, bench.MemoryUnmeasured, &bench.Verdict{Class: bench.Uncountable, Residual: math.Inf(1)}),
		bench.NewSuccess(plain, 1, bench.MemoryUnmeasured, nil),
		bench.NewFailure(plain, bench.FailureConversion, "native 3x4, handle 4x3"),
		bench.NewFailure(ok, bench.FailureSkipped, "estimated memory exceeds limit"),
	}
}

func TestRoundTrip(t *testing.T) {
	doc := report.NewDocument(sampleRecords(t))
	for _, f := range []report.Format{report.FormatJSON, report.FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, report.Encode(&buf, doc, f))

			back, err := report.Decode(&buf, f)
			require.NoError(t, err)
			if diff := cmp.Diff(doc, back); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	f, err := report.FormatFromPath("out/results.YML")
	require.NoError(t, err)
	assert.Equal(t, report.FormatYAML, f)

	f, err = report.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, f)

	_, err = report.FormatFromPath("results.csv")
	require.ErrorIs(t, err, report.ErrUnknownFormat)
	require.ErrorIs(t, report.Encode(&bytes.Buffer{}, report.Document{}, "xml"), report.ErrUnknownFormat)
	_, err = report.Decode(strings.NewReader(""), "xml")
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := report.Decode(strings.NewReader(`{"records":[],"extra":1}`), report.FormatJSON)
	require.Error(t, err)

	_, err = report.Decode(strings.NewReader("records:\n  - operation: fft\n"), report.FormatYAML)
	require.Error(t, err, "unknown operation name")
}

func TestWriteLeaderboards(t *testing.T) {
	boards := ranking.RankAll(sampleRecords(t), nil)
	var buf bytes.Buffer
	require.NoError(t, report.WriteLeaderboards(&buf, boards))

	out := buf.String()
	assert.Contains(t, out, "qr n=128")
	assert.Contains(t, out, "mult n=64")
	assert.Contains(t, out, "Gonum")
	assert.Contains(t, out, "UNCOUNTABLE")
	assert.Contains(t, out, "conversion: native 3x4")
	assert.Contains(t, out, "skipped")
}
