package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybojanek/zwaveip/config"
	"github.com/cybojanek/zwaveip/mapping"
	"github.com/cybojanek/zwaveip/transport"
	"github.com/cybojanek/zwaveip/zipframe"
)

func testOptions() *config.Options {
	return &config.Options{
		GatewayIP:      "127.0.0.1",
		GatewayPort:    4123,
		LocalPort:      4000,
		DefaultRetries: 1,
		SendTimeoutMS:  200,
	}
}

func newTestCoordinator(t *testing.T) (*Coordinator, *transport.Scripted) {
	t.Helper()
	tp := transport.NewScripted()
	c := New(testOptions(), tp)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() { _ = c.Stop() })
	return c, tp
}

func waitForSend(t *testing.T, tp *transport.Scripted) []byte {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		if len(tp.Sent) > 0 {
			return tp.Sent[len(tp.Sent)-1]
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for a send")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestGetNodeListCompletesOnReport(t *testing.T) {
	c, tp := newTestCoordinator(t)

	done := make(chan struct{})
	var report zipframe.NodeListReport
	var runErr error
	go func() {
		report, runErr = c.GetNodeList(context.Background())
		close(done)
	}()

	raw := waitForSend(t, tp)
	seq, _, _, err := zipframe.DecodeHeader(raw)
	require.NoError(t, err)

	body, err := zipframe.EncodeCommand(mapping.CommandClassNetworkManagementProxy,
		mapping.CmdNetworkManagementProxyNodeListReport,
		zipframe.NodeListReport{SeqNo: seq, Status: 0, NodeList: []uint8{1, 2, 9}})
	require.NoError(t, err)
	tp.Push(zipframe.Encode(seq, zipframe.TypeSet(0), body))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("GetNodeList did not complete")
	}
	require.NoError(t, runErr)
	assert.Equal(t, []uint8{1, 2, 9}, report.NodeList)
	assert.Equal(t, ModeIdle, c.Mode())
}

func TestIncludeNodeTransitionsToConfiguringNewNode(t *testing.T) {
	c, tp := newTestCoordinator(t)

	done := make(chan struct{})
	var runErr error
	go func() {
		_, runErr = c.IncludeNode(context.Background(), false)
		close(done)
	}()

	raw := waitForSend(t, tp)
	seq, _, _, err := zipframe.DecodeHeader(raw)
	require.NoError(t, err)
	assert.Equal(t, ModeIncludingNode, c.Mode())

	reportBody, err := zipframe.EncodeCommand(mapping.CommandClassNetworkManagementInclusion,
		mapping.CmdNetworkManagementInclusionNodeAddStatus,
		zipframe.NodeAddStatusReport{SeqNo: seq, Status: 0x06})
	require.NoError(t, err)
	tp.Push(zipframe.Encode(seq, zipframe.TypeSet(0), reportBody))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("IncludeNode did not complete")
	}
	require.NoError(t, runErr)
	assert.Equal(t, ModeConfiguringNewNode, c.Mode())

	c.ConfigurationDone()
	assert.Equal(t, ModeIdle, c.Mode())
}

func TestAdmissionRejectsWhenNetworkBusy(t *testing.T) {
	c, tp := newTestCoordinator(t)

	done := make(chan struct{})
	go func() {
		_, _ = c.IncludeNode(context.Background(), false)
		close(done)
	}()
	waitForSend(t, tp)
	require.Equal(t, ModeIncludingNode, c.Mode())

	_, err := c.ExcludeNode(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetworkBusy)

	c.Stop()
	<-done
}

func TestSubscribeReceivesUnsolicitedNotification(t *testing.T) {
	c, tp := newTestCoordinator(t)

	_, events := c.Subscribe()

	body, err := zipframe.EncodeCommand(mapping.CommandClassNotification, mapping.CmdNotificationReport,
		zipframe.NotificationReport{Type: mapping.Symbol{Raw: 0x07}, State: mapping.Symbol{Raw: 0x08}})
	require.NoError(t, err)
	tp.Push(zipframe.Encode(0xAA, zipframe.TypeSet(0), body))

	select {
	case ev := <-events:
		assert.Equal(t, uint8(0xAA), ev.Packet.SeqNumber)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive unsolicited event")
	}
}
