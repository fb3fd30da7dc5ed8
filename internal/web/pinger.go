package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	pingInterval   = 5 * time.Minute
	pingAttempts   = 5
	pingRetryBase  = 10 * time.Second
	pingRetryCap   = 5 * time.Minute
	pingReqTimeout = 30 * time.Second
)

// Pinger periodically fetches the bot's own public URL so free hosting
// tiers do not put the instance to sleep.
type Pinger struct {
	url string
	hc  *http.Client
	log *logrus.Logger
}

func NewPinger(url string, log *logrus.Logger) *Pinger {
	return &Pinger{
		url: url,
		hc:  &http.Client{Timeout: pingReqTimeout},
		log: log,
	}
}

// Run pings every five minutes until the context is cancelled.
func (p *Pinger) Run(ctx context.Context) {
	if p.url == "" {
		return
	}
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

// ping retries with exponential backoff before giving up until the next
// tick.
func (p *Pinger) ping(ctx context.Context) {
	delay := pingRetryBase
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		err := p.fetch(ctx)
		if err == nil {
			p.log.Debug("keep-alive ping ok")
			return
		}
		p.log.WithError(err).Warnf("keep-alive ping attempt %d/%d failed", attempt, pingAttempts)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > pingRetryCap {
			delay = pingRetryCap
		}
	}
	p.log.Error("keep-alive pings exhausted, instance may go to sleep")
}

func (p *Pinger) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return err
	}
	resp, err := p.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
