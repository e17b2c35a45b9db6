package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cybojanek/zwaveip/zipframe"
)

func TestAckDispatchMatchesOnAck(t *testing.T) {
	pkt := &zipframe.Packet{SeqNumber: 5, Types: mustTypeSet(zipframe.AckResponse)}
	tr := AckDispatch(pkt, 5, 2, false)
	assert.Equal(t, Done, tr.Kind)
	assert.Nil(t, tr.Err)
}

func TestAckDispatchIgnoresOtherSeqNo(t *testing.T) {
	pkt := &zipframe.Packet{SeqNumber: 9, Types: mustTypeSet(zipframe.AckResponse)}
	tr := AckDispatch(pkt, 5, 2, false)
	assert.Equal(t, Continue, tr.Kind)
}

func TestAckDispatchNackWithRetriesRetries(t *testing.T) {
	pkt := &zipframe.Packet{SeqNumber: 5, Types: mustTypeSet(zipframe.NackResponse)}
	tr := AckDispatch(pkt, 5, 1, false)
	assert.Equal(t, Retry, tr.Kind)
}

func TestAckDispatchNackNoRetriesFails(t *testing.T) {
	pkt := &zipframe.Packet{SeqNumber: 5, Types: mustTypeSet(zipframe.NackResponse)}
	tr := AckDispatch(pkt, 5, 0, false)
	if assert.Equal(t, Done, tr.Kind) {
		cmdErr, ok := tr.Err.(*Error)
		if assert.True(t, ok) {
			assert.Equal(t, KindNackResponse, cmdErr.Kind)
		}
	}
}

func TestAckDispatchNackWaitingQueuesOutsideConfiguring(t *testing.T) {
	pkt := &zipframe.Packet{
		SeqNumber:     5,
		Types:         mustTypeSet(zipframe.NackResponse, zipframe.NackWaiting),
		SleepingDelay: true,
	}
	tr := AckDispatch(pkt, 5, 2, false)
	assert.Equal(t, Queued, tr.Kind)
}

func TestAckDispatchNackWaitingContinuesWhileConfiguring(t *testing.T) {
	pkt := &zipframe.Packet{
		SeqNumber:     5,
		Types:         mustTypeSet(zipframe.NackResponse, zipframe.NackWaiting),
		SleepingDelay: true,
	}
	tr := AckDispatch(pkt, 5, 2, true)
	assert.Equal(t, Continue, tr.Kind)
}

func TestTimeoutTransitionRetriesThenFails(t *testing.T) {
	assert.Equal(t, Retry, TimeoutTransition(1).Kind)
	assert.Equal(t, Done, TimeoutTransition(0).Kind)
}

func mustTypeSet(types ...zipframe.PacketType) zipframe.TypeSet {
	var s zipframe.TypeSet
	for _, t := range types {
		s |= zipframe.TypeSet(t)
	}
	return s
}
