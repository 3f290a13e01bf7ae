package edgelist

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	l, err := ParseLine("0\tEN\t1\tZH", "")
	require.NoError(t, err)
	assert.Equal(t, Line{SourceID: 0, SourceValue: "EN", TargetID: 1, TargetValue: "ZH"}, l)

	l, err = ParseLine("-5 , a b , 7 , c", ",")
	require.NoError(t, err)
	assert.Equal(t, Line{SourceID: -5, SourceValue: "a b", TargetID: 7, TargetValue: "c"}, l)

	for _, bad := range []string{
		"0\tEN\t1",
		"0\tEN\t1\tZH\textra",
		"x\tEN\t1\tZH",
		"0\tEN\t1.5\tZH",
		"99999999999999999999\tEN\t1\tZH",
	} {
		_, err := ParseLine(bad, "\t")
		assert.ErrorIs(t, err, ErrMalformedRecord, bad)
	}
}

const sample = "# languages\n0\tEN\t1\tZH\n\n2\tDE\t0\tEN\r\n"

func TestRead(t *testing.T) {
	lines, report, err := Read(context.Background(), strings.NewReader(sample), Config{})
	require.NoError(t, err)
	assert.Equal(t, []Line{
		{SourceID: 0, SourceValue: "EN", TargetID: 1, TargetValue: "ZH"},
		{SourceID: 2, SourceValue: "DE", TargetID: 0, TargetValue: "EN"},
	}, lines)
	assert.Equal(t, 4, report.Lines)
	assert.Equal(t, 2, report.Records)
	assert.True(t, report.Skipped.IsEmpty())
}

func TestRead_MalformedPolicy(t *testing.T) {
	input := "0\tEN\t1\tZH\nbroken\n2\tDE\t0\tEN\n3\tFR\tx\tIT\n"

	_, _, err := Read(context.Background(), strings.NewReader(input), Config{})
	require.ErrorIs(t, err, ErrMalformedRecord)
	var me *MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 2, me.Line)
	assert.Equal(t, "broken", me.Raw)

	lines, report, err := Read(context.Background(), strings.NewReader(input), Config{Malformed: SkipMalformed})
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, []uint32{2, 4}, report.Skipped.ToArray())
}

func TestRead_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := strings.Repeat("0\tEN\t1\tZH\n", 5000)
	_, _, err := Read(ctx, strings.NewReader(input), Config{})
	assert.ErrorIs(t, err, context.Canceled)
}
