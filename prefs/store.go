//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package prefs stores user preferences. Each client (a feature of the
// editor) gets its own namespace of scalar values with defaults, and every
// change is written through to a YAML file.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store holds the preferences of all clients.
type Store struct {
	mu      sync.Mutex
	path    string
	clients map[string]map[string]any
}

// Open loads preferences from path. A missing file yields an empty store;
// an empty path yields a store that is never written to disk.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		clients: make(map[string]map[string]any),
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.clients); err != nil {
		return nil, fmt.Errorf("parse preferences: %w", err)
	}
	if s.clients == nil {
		s.clients = make(map[string]map[string]any)
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Storage returns the preferences of one client. Keys that have never been
// set read as their value in defaults.
func (s *Store) Storage(clientID string, defaults map[string]any) *Storage {
	d := make(map[string]any, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &Storage{store: s, clientID: clientID, defaults: d}
}

func (s *Store) get(clientID, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.clients[clientID]
	if !ok {
		return nil, false
	}
	v, ok := values[key]
	return v, ok
}

func (s *Store) set(clientID, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.clients[clientID]
	if !ok {
		values = make(map[string]any)
		s.clients[clientID] = values
	}
	values[key] = value
	return s.save()
}

// save writes the whole store. Callers hold s.mu.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(s.clients)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// Storage is the view of the store owned by a single client.
type Storage struct {
	store    *Store
	clientID string
	defaults map[string]any
}

// ClientID returns the namespace of this storage.
func (p *Storage) ClientID() string {
	return p.clientID
}

// Value returns the stored value for key, falling back to its default.
func (p *Storage) Value(key string) (any, bool) {
	if v, ok := p.store.get(p.clientID, key); ok {
		return v, true
	}
	v, ok := p.defaults[key]
	return v, ok
}

// Bool returns a boolean preference. Values of another type read as the
// default, and as false when there is no default.
func (p *Storage) Bool(key string) bool {
	v, _ := p.Value(key)
	if b, ok := v.(bool); ok {
		return b
	}
	b, _ := p.defaults[key].(bool)
	return b
}

// Int returns an integer preference. Values of another type read as the
// default, and as 0 when there is no default.
func (p *Storage) Int(key string) int {
	v, _ := p.Value(key)
	if i, ok := toInt(v); ok {
		return i
	}
	i, _ := toInt(p.defaults[key])
	return i
}

// Set stores a value and writes the store to disk.
func (p *Storage) Set(key string, value any) error {
	return p.store.set(p.clientID, key, value)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
