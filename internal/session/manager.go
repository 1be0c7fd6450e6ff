// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager tracks session identity and idle state for one interactive run.
type Manager struct {
	mu sync.Mutex

	sessionID    string
	startTime    time.Time
	lastActivity time.Time

	// timeout of 0 disables idle expiry.
	timeout       time.Duration
	warningBefore time.Duration
	warningShown  bool
}

// Config holds configuration for the session manager.
type Config struct {
	// Timeout is the idle timeout duration; 0 disables.
	Timeout time.Duration
	// WarningBefore is how long before timeout to warn (default: 1 minute).
	WarningBefore time.Duration
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:       0,
		WarningBefore: time.Minute,
	}
}

// NewManager creates a new session manager.
func NewManager(cfg Config) *Manager {
	now := time.Now()
	if cfg.WarningBefore <= 0 {
		cfg.WarningBefore = time.Minute
	}
	return &Manager{
		sessionID:     "sess_" + uuid.NewString(),
		startTime:     now,
		lastActivity:  now,
		timeout:       cfg.Timeout,
		warningBefore: cfg.WarningBefore,
	}
}

// =============================================================================
// SESSION STATE
// =============================================================================

// SessionID returns the current session ID.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Duration returns how long the session has been active.
func (m *Manager) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.startTime)
}

// IdleTime returns how long since last activity.
func (m *Manager) IdleTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.lastActivity)
}

// RecordActivity updates the last activity timestamp. Called on user
// input or any other interaction.
func (m *Manager) RecordActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity = time.Now()
	m.warningShown = false
}

// IsExpired returns true if the session has idled out.
func (m *Manager) IsExpired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout > 0 && time.Since(m.lastActivity) >= m.timeout
}

// RemainingTime returns time until idle expiry, or 0 when expiry is
// disabled or already reached.
func (m *Manager) RemainingTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timeout <= 0 {
		return 0
	}
	remaining := m.timeout - time.Since(m.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to check session state.
type TickMsg struct {
	Time time.Time
}

// TimeoutWarningMsg indicates the session is about to idle out.
type TimeoutWarningMsg struct {
	Remaining time.Duration
}

// TimeoutMsg indicates the session has idled out.
type TimeoutMsg struct{}

// TickCmd returns a command that ticks once per second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick evaluates session state and emits warning/timeout messages,
// then schedules the next tick.
func (m *Manager) HandleTick() tea.Cmd {
	var cmds []tea.Cmd

	m.mu.Lock()
	expired := m.timeout > 0 && time.Since(m.lastActivity) >= m.timeout
	shouldWarn := false
	var remaining time.Duration
	if m.timeout > 0 && !expired && !m.warningShown {
		idle := time.Since(m.lastActivity)
		if idle >= m.timeout-m.warningBefore {
			shouldWarn = true
			remaining = m.timeout - idle
			m.warningShown = true
		}
	}
	m.mu.Unlock()

	if shouldWarn {
		cmds = append(cmds, func() tea.Msg {
			return TimeoutWarningMsg{Remaining: remaining}
		})
	}
	if expired {
		cmds = append(cmds, func() tea.Msg {
			return TimeoutMsg{}
		})
	}
	cmds = append(cmds, TickCmd())

	return tea.Batch(cmds...)
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatDuration returns a compact human-readable duration string
// ("45s", "3m", "3m 20s").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
