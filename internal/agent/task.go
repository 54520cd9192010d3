// Package agent packages a rendered booking script for the external
// browser-automation agent. Nothing here drives a browser.
package agent

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSensitiveDataKeys are placeholders printed verbatim in the script.
// The agent substitutes the real values from its own secret store.
var DefaultSensitiveDataKeys = []string{"SEAWARE_PASSWORD"}

var (
	ErrEmptyScript = errors.New("empty booking script")
)

// Task is the hand-off envelope consumed by the agent.
type Task struct {
	ID                uuid.UUID `json:"id"`
	StartURL          string    `json:"start_url"`
	Script            string    `json:"script"`
	Instructions      string    `json:"instructions"`
	SensitiveDataKeys []string  `json:"sensitive_data_keys"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewTask wraps script with the constraints of the environment at startURL.
// A nil sensitive list means DefaultSensitiveDataKeys.
func NewTask(script, startURL string, sensitive []string) Task {
	if sensitive == nil {
		sensitive = DefaultSensitiveDataKeys
	}
	t := Task{
		ID:                uuid.New(),
		StartURL:          startURL,
		Script:            script,
		Instructions:      script,
		SensitiveDataKeys: slices.Clone(sensitive),
		CreatedAt:         time.Now().UTC(),
	}
	if env, ok := NewEnvironment(startURL); ok {
		t.Instructions = env.Instructions(script, t.SensitiveDataKeys)
	}
	return t
}

// Validate rejects envelopes the agent could not act on.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Script) == "" {
		return ErrEmptyScript
	}
	return nil
}
