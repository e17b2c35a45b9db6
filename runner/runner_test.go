package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybojanek/zwaveip/command"
	"github.com/cybojanek/zwaveip/transport"
	"github.com/cybojanek/zwaveip/zipframe"
)

func TestRunnerCompletesOnAck(t *testing.T) {
	tp := transport.NewScripted()
	cmd := command.NewGetNodeList(3, 2)
	r := New(3, cmd, tp, time.Second, nil)

	done := make(chan struct{})
	var result any
	var runErr error
	go func() {
		result, runErr = r.Run(context.Background())
		close(done)
	}()

	waitForSend(t, tp)
	ackPkt := &zipframe.Packet{SeqNumber: 3, Types: mustTypeSet(zipframe.AckResponse)}
	r.Deliver(ackPkt)

	waitForSend(t, tp) // node_list_report will be a second "send" observation only if retried; just wait for Done.
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not complete")
	}
	assert.NoError(t, runErr)
	assert.Nil(t, result)
}

func TestRunnerRetriesOnTimeout(t *testing.T) {
	tp := transport.NewScripted()
	cmd := command.NewGetNodeList(1, 1)
	r := New(1, cmd, tp, 20*time.Millisecond, nil)

	done := make(chan struct{})
	var runErr error
	go func() {
		_, runErr = r.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not complete")
	}
	require.Error(t, runErr)
	cmdErr, ok := runErr.(*command.Error)
	require.True(t, ok)
	assert.Equal(t, command.KindTimeout, cmdErr.Kind)

	assert.GreaterOrEqual(t, len(tp.Sent), 2, "expected at least one retry send")
}

func TestRunnerCancelStopsPromptly(t *testing.T) {
	tp := transport.NewScripted()
	cmd := command.NewGetNodeList(2, 2)
	r := New(2, cmd, tp, time.Second, nil)

	done := make(chan struct{})
	var runErr error
	go func() {
		_, runErr = r.Run(context.Background())
		close(done)
	}()

	waitForSend(t, tp)
	r.Cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop on cancel")
	}
	assert.ErrorIs(t, runErr, command.ErrCancelled)
}

func waitForSend(t *testing.T, tp *transport.Scripted) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		if len(tp.Sent) > 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for runner to send")
		case <-time.After(time.Millisecond):
		}
	}
}

func mustTypeSet(types ...zipframe.PacketType) zipframe.TypeSet {
	var s zipframe.TypeSet
	for _, ty := range types {
		s |= zipframe.TypeSet(ty)
	}
	return s
}
