package storage

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/google/uuid"
)

// MemoryProvider keeps blobs in process memory. Intended for development and
// tests only.
type MemoryProvider struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryProvider creates an empty in-memory storage provider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{objects: make(map[string][]byte)}
}

// Upload stores data under a generated key.
func (p *MemoryProvider) Upload(_ context.Context, data []byte, filename, _ string) (*UploadResult, error) {
	key := objectPrefix + uuid.NewString() + path.Ext(filename)

	p.mu.Lock()
	defer p.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	p.objects[key] = buf

	return &UploadResult{
		URL:         "memory://" + key,
		ProviderKey: key,
	}, nil
}

// Delete removes the object addressed by providerKey. Deleting an unknown
// key is an error, matching providers that reject missing objects.
func (p *MemoryProvider) Delete(_ context.Context, providerKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.objects[providerKey]; !ok {
		return fmt.Errorf("object not found: %s", providerKey)
	}
	delete(p.objects, providerKey)
	return nil
}

// Len returns the number of stored objects.
func (p *MemoryProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.objects)
}

// Has reports whether providerKey is stored.
func (p *MemoryProvider) Has(providerKey string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.objects[providerKey]
	return ok
}
