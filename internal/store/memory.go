package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jonathan/resume-vault/internal/types"
)

// Memory is an in-process Store used by tests and the CLI's offline commands.
// A single mutex serializes every mutation.
type Memory struct {
	mu      sync.Mutex
	docs    map[string]json.RawMessage
	drafts  map[string]types.Draft
	current string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs:   make(map[string]json.RawMessage),
		drafts: make(map[string]types.Draft),
	}
}

// ResumeDocs returns a copy of every stored document.
func (m *Memory) ResumeDocs(_ context.Context) (map[string]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]json.RawMessage, len(m.docs))
	for id, doc := range m.docs {
		out[id] = cloneDoc(doc)
	}
	return out, nil
}

// ResumeDoc returns the document for id.
func (m *Memory) ResumeDoc(_ context.Context, id string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return cloneDoc(doc), nil
}

// PutResumeDoc inserts or replaces the document for id.
func (m *Memory) PutResumeDoc(_ context.Context, id string, doc json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = cloneDoc(doc)
	return nil
}

// PutResumeDocs inserts or replaces every given document under one mutex
// hold, so the batch is all-or-nothing.
func (m *Memory) PutResumeDocs(_ context.Context, docs map[string]json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, doc := range docs {
		m.docs[id] = cloneDoc(doc)
	}
	return nil
}

// DeleteResume removes the document for id.
func (m *Memory) DeleteResume(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

// CurrentProfile returns the selected resume id.
func (m *Memory) CurrentProfile(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, nil
}

// SetCurrentProfile selects a resume id; "" clears the selection.
func (m *Memory) SetCurrentProfile(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = id
	return nil
}

// Draft returns the stored draft for key, or nil.
func (m *Memory) Draft(_ context.Context, key string) (*types.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[key]
	if !ok {
		return nil, nil
	}
	out := d
	return &out, nil
}

// PutDraft inserts or replaces the draft for key.
func (m *Memory) PutDraft(_ context.Context, key string, d *types.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[key] = *d
	return nil
}

// ClearDraft removes the draft for key.
func (m *Memory) ClearDraft(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}

func cloneDoc(doc json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(doc))
	copy(out, doc)
	return out
}
