package voice

import (
	"errors"
	"sync"
	"sync/atomic"
)

// fakeConn satisfies Connection and counts the frames pushed through it.
type fakeConn struct {
	mu           sync.Mutex
	speaking     bool
	disconnected bool

	opus       chan []byte
	framesSent atomic.Int64
}

func newFakeConn() *fakeConn {
	c := &fakeConn{opus: make(chan []byte, 16)}
	go func() {
		for range c.opus {
			c.framesSent.Add(1)
		}
	}()
	return c
}

func (c *fakeConn) Speaking(speaking bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speaking = speaking
	return nil
}

func (c *fakeConn) OpusSend() chan<- []byte {
	return c.opus
}

func (c *fakeConn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnected = true
	return nil
}

func (c *fakeConn) isDisconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnected
}

// fakeDialer hands out fakeConns and records every join.
type fakeDialer struct {
	mu    sync.Mutex
	joins []string
	fail  bool
	conns map[string]*fakeConn
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{conns: map[string]*fakeConn{}}
}

func (d *fakeDialer) Join(guildID, channelID string) (Connection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return nil, errors.New("join failed")
	}
	d.joins = append(d.joins, guildID+"/"+channelID)
	conn := newFakeConn()
	d.conns[guildID] = conn
	return conn, nil
}

func (d *fakeDialer) joinCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.joins)
}
