package sim

import (
	"bytes"
	"context"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/openuat/uatsim/agent"
	"github.com/openuat/uatsim/core"
)

func TestJournal_ReplaysASimulatedRun(t *testing.T) {
	var buf bytes.Buffer
	journal := NewJournalWriter[string](&buf)

	var live []Trade[string]
	factory := spawnOnce(
		agent.NewMissionAgent(core.Mission[string]{From: "R1", To: "R2"}),
		agent.NewMissionAgent(core.Mission[string]{From: "R2", To: "R1"}),
	)
	err := Simulate(context.Background(), factory, 5, Options[string]{
		OnTrade: func(tr Trade[string]) {
			live = append(live, tr)
			check.NoError(t, journal.Append(tr))
		},
	})
	assert.NoError(t, err)
	assert.NoError(t, journal.Err())
	assert.NotEqual(t, 0, len(live))

	replayed, err := ReadJournal[string](bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	check.Equal(t, live, replayed)
}

func TestJournal_DetectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	journal := NewJournalWriter[string](&buf)

	tr := Trade[string]{
		TransactionTime: 1,
		From:            core.NoOwner,
		To:              0,
		Location:        "R1",
		Time:            2,
		Value:           1.25,
	}
	assert.NoError(t, journal.Append(tr))

	// Flip one byte of the encoded value field.
	raw := buf.Bytes()
	raw[len(raw)/2] ^= 0xff

	_, err := ReadJournal[string](bytes.NewReader(raw))
	check.Error(t, err)
}

func TestJournal_EmptyStream(t *testing.T) {
	trades, err := ReadJournal[string](bytes.NewReader(nil))
	check.NoError(t, err)
	check.Equal(t, 0, len(trades))
}
