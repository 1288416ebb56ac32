package idregistry

import (
	"context"

	"github.com/valkey-io/valkey-go"
)

// ValkeyRegistry reserves ids in a Valkey-compatible database using
// SET NX, which gives the registry its check-and-reserve atomicity
// across processes.
type ValkeyRegistry struct {
	client valkey.Client
	prefix string
}

// NewValkeyRegistry constructs a registry keyed under prefix.
func NewValkeyRegistry(client valkey.Client, prefix string) *ValkeyRegistry {
	if prefix == "" {
		prefix = "closet:ids"
	}
	return &ValkeyRegistry{client: client, prefix: prefix}
}

// Reserve returns true when the id was absent and is now held.
func (r *ValkeyRegistry) Reserve(ctx context.Context, id string) (bool, error) {
	cmd := r.client.B().Set().Key(r.key(id)).Value("1").Nx().Build()
	result := r.client.Do(ctx, cmd)
	if err := result.Error(); err != nil {
		// SET NX answers nil when the key already exists.
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ValkeyRegistry) key(id string) string {
	return r.prefix + ":" + id
}
