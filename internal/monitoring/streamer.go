// Package monitoring pushes live metrics snapshots to websocket clients
package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"IPService/internal/metrics"
	"IPService/internal/pkg/logger"

	"github.com/benbjohnson/clock"
)

// Broadcaster is the part of the websocket hub the streamer needs
type Broadcaster interface {
	Len() int
	BroadcastJSON(v interface{})
}

// Message is the payload pushed on every tick
type Message struct {
	Timestamp string           `json:"timestamp"`
	Metrics   metrics.Snapshot `json:"metrics"`
}

// Streamer collects a snapshot on every tick while clients are connected
type Streamer struct {
	collector *metrics.Collector
	hub       Broadcaster
	clock     clock.Clock
	interval  time.Duration

	mutex     sync.Mutex
	isRunning bool
	stopChan  chan struct{}
	done      chan struct{}
}

// NewStreamer creates a stopped streamer
func NewStreamer(collector *metrics.Collector, hub Broadcaster, clk clock.Clock, interval time.Duration) *Streamer {
	return &Streamer{
		collector: collector,
		hub:       hub,
		clock:     clk,
		interval:  interval,
	}
}

// Start begins the ticker loop
func (s *Streamer) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.isRunning {
		return fmt.Errorf("metrics streamer is already running")
	}
	if s.interval <= 0 {
		return fmt.Errorf("invalid stream interval: %s", s.interval)
	}

	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	s.isRunning = true

	ticker := s.clock.Ticker(s.interval)
	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.tick()
			case <-s.stopChan:
				return
			}
		}
	}()

	logger.Debug("Started metrics streamer", logger.Duration("interval", s.interval))
	return nil
}

// Stop halts the loop and waits for it to exit
func (s *Streamer) Stop() {
	s.mutex.Lock()
	if !s.isRunning {
		s.mutex.Unlock()
		return
	}
	close(s.stopChan)
	s.isRunning = false
	done := s.done
	s.mutex.Unlock()

	<-done
	logger.Info("Metrics streamer stopped")
}

// tick skips collection when nobody is listening
func (s *Streamer) tick() {
	if s.hub.Len() == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	s.hub.BroadcastJSON(Message{
		Timestamp: s.clock.Now().Format(time.RFC3339Nano),
		Metrics:   s.collector.Collect(ctx),
	})
}
