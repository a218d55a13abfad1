package tui

import "strings"

// Pane is the console the controller writes to. It is only touched from
// the bubbletea update loop.
type Pane struct {
	content strings.Builder
	running bool
	dirty   bool
}

func (p *Pane) Append(text string) {
	p.content.WriteString(text)
	p.dirty = true
}

func (p *Pane) Clear() {
	p.content.Reset()
	p.dirty = true
}

func (p *Pane) SetRunning(running bool) {
	p.running = running
}

func (p *Pane) String() string {
	return p.content.String()
}

// takeDirty reports whether the content changed since the last call.
func (p *Pane) takeDirty() bool {
	d := p.dirty
	p.dirty = false
	return d
}
