package config

import (
	"encoding/json"
	"strings"
)

// DefaultProfileName is the pseudo-profile meaning "no override".
const DefaultProfileName = "Default"

// InterpreterProfile overrides which program runs a script.
type InterpreterProfile struct {
	Name      string   `json:"name" yaml:"name"`
	Command   string   `json:"command" yaml:"command"`
	Arguments []string `json:"arguments" yaml:"arguments"`
}

// UnmarshalJSON fills in the defaults used when a profile is saved with
// missing fields.
func (p *InterpreterProfile) UnmarshalJSON(data []byte) error {
	type plain InterpreterProfile
	v := plain{Name: "Custom", Arguments: []string{}}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Arguments == nil {
		v.Arguments = []string{}
	}
	*p = InterpreterProfile(v)
	return nil
}

// Profile returns the first profile named name.
func (c *Config) Profile(name string) (InterpreterProfile, bool) {
	for _, p := range c.InterpreterProfiles {
		if p.Name == name {
			return p, true
		}
	}
	return InterpreterProfile{}, false
}

// UpsertProfile stores p, replacing any profile of the same name.
func (c *Config) UpsertProfile(p InterpreterProfile) {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = "Custom"
	}
	if p.Arguments == nil {
		p.Arguments = []string{}
	}
	for i := range c.InterpreterProfiles {
		if c.InterpreterProfiles[i].Name == p.Name {
			c.InterpreterProfiles[i] = p
			return
		}
	}
	c.InterpreterProfiles = append(c.InterpreterProfiles, p)
}

// DeleteProfile removes every profile named name and clears the active
// selection if it pointed there. It reports whether anything was removed.
func (c *Config) DeleteProfile(name string) bool {
	kept := c.InterpreterProfiles[:0:0]
	for _, p := range c.InterpreterProfiles {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(c.InterpreterProfiles)
	c.InterpreterProfiles = kept
	if c.ActiveProfileName() == name {
		c.ActiveProfile = nil
	}
	return removed
}

// SetActiveProfile selects a profile by name; "" or "Default" clears the selection.
func (c *Config) SetActiveProfile(name string) {
	if name == "" || name == DefaultProfileName {
		c.ActiveProfile = nil
		return
	}
	c.ActiveProfile = &name
}

// ActiveProfileName returns the selected profile name or "".
func (c *Config) ActiveProfileName() string {
	if c.ActiveProfile == nil {
		return ""
	}
	return *c.ActiveProfile
}

// SelectedProfile returns the active profile when it exists and has a command.
func (c *Config) SelectedProfile() (InterpreterProfile, bool) {
	name := c.ActiveProfileName()
	if name == "" {
		return InterpreterProfile{}, false
	}
	p, ok := c.Profile(name)
	if !ok || strings.TrimSpace(p.Command) == "" {
		return InterpreterProfile{}, false
	}
	return p, true
}
