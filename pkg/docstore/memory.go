package docstore

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store for tests and local development.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[string]json.RawMessage)}
}

func (m *Memory) Get(_ context.Context, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return json.Marshal(doc)
}

func (m *Memory) Upsert(_ context.Context, key string, doc json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.docs[key]
	if !ok {
		cur = make(map[string]json.RawMessage, len(fields))
		m.docs[key] = cur
	}
	for k, v := range fields {
		cur[k] = v
	}
	return nil
}

func (m *Memory) UpdateField(_ context.Context, key, field string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[key]
	if !ok {
		return ErrNotFound
	}
	doc[field] = b
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}
