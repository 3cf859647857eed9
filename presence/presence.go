// Package presence publishes the game state as Discord rich presence.
package presence

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hugolgst/rich-go/client"
)

var ErrDisabled = errors.New("discord presence is disabled")

// MinUpdateInterval limits how often the activity is sent to Discord.
const MinUpdateInterval = 15 * time.Second

// Client is the connection to the local Discord client.
type Client interface {
	Login(appID string) error
	SetActivity(activity client.Activity) error
	Logout()
}

// ipcClient talks to Discord through the rich-go ipc socket.
type ipcClient struct{}

func (ipcClient) Login(appID string) error {
	return client.Login(appID)
}

func (ipcClient) SetActivity(activity client.Activity) error {
	return client.SetActivity(activity)
}

func (ipcClient) Logout() {
	client.Logout()
}

type activity struct {
	state   string
	details string
}

type Presence struct {
	appID  string
	client Client
	now    func() time.Time

	mu      sync.Mutex
	enabled bool
	started time.Time

	current  activity
	pending  *activity
	lastSent time.Time
}

// New creates a presence publisher for the given application id. An empty
// id or "0" disables presence.
func New(appID string) *Presence {
	return NewWithClient(appID, ipcClient{})
}

func NewWithClient(appID string, c Client) *Presence {
	return &Presence{
		appID:  appID,
		client: c,
		now:    time.Now,
	}
}

func (p *Presence) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.enabled
}

// Start connects to Discord and publishes the initial activity. On failure
// presence stays disabled and the game continues without it.
func (p *Presence) Start(state, details string) error {
	if p.appID == "" || p.appID == "0" {
		slog.Info("Discord presence disabled, no application id configured")
		return ErrDisabled
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.client.Login(p.appID); err != nil {
		slog.Warn("Discord presence failed to start, continuing without it", slog.String("err", err.Error()))
		return fmt.Errorf("login to discord: %w", err)
	}

	p.enabled = true
	p.started = p.now()
	p.current = activity{state: state, details: details}

	if err := p.send(p.current); err != nil {
		p.client.Logout()
		p.enabled = false

		slog.Warn("Discord presence failed to start, continuing without it", slog.String("err", err.Error()))
		return fmt.Errorf("set initial activity: %w", err)
	}

	slog.Info("Discord presence started", slog.String("appID", p.appID))

	return nil
}

// Update records a new activity. It is sent on the next Tick that is not
// rate limited.
func (p *Presence) Update(state, details string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}

	next := activity{state: state, details: details}
	if next == p.current {
		p.pending = nil
		return
	}

	p.pending = &next
}

// Tick sends a pending activity change, at most once per MinUpdateInterval.
// It reports whether an activity was sent.
func (p *Presence) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.pending == nil {
		return false
	}

	if p.now().Sub(p.lastSent) < MinUpdateInterval {
		return false
	}

	next := *p.pending
	p.pending = nil

	if err := p.send(next); err != nil {
		// discord might have been closed, stop trying
		slog.Warn("Discord presence update failed, disabling presence", slog.String("err", err.Error()))
		p.client.Logout()
		p.enabled = false
		return false
	}

	p.current = next
	return true
}

func (p *Presence) send(a activity) error {
	started := p.started

	err := p.client.SetActivity(client.Activity{
		State:      a.state,
		Details:    a.details,
		LargeImage: "logo",
		LargeText:  "XyloGame Engine",
		Timestamps: &client.Timestamps{Start: &started},
	})

	if err != nil {
		return err
	}

	p.lastSent = p.now()
	return nil
}

// Stop disconnects from Discord.
func (p *Presence) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}

	p.client.Logout()
	p.enabled = false
	p.pending = nil

	slog.Info("Discord presence stopped")
}
