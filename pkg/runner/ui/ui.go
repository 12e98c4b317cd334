// Package ui runs the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/tracker"
)

// UI opens the Bubble Tea program over a store.
type UI struct {
	Store *tracker.Store
	// Persistence, when set, is watched so writes from other processes show
	// up without restarting.
	Persistence store.Persistence
}

func (u *UI) Do(ctx context.Context) error {
	if u.Store == nil {
		return errors.New("can not start ui, no store")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var events <-chan store.Event
	if u.Persistence != nil {
		ch, err := u.Persistence.Watch(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ui: not watching %s: %v\n", u.Persistence.Path(), err)
		} else {
			events = ch
		}
	}

	p := tea.NewProgram(New(ctx, u.Store, events, DetectTheme()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
