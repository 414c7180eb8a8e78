package ports

import "context"

// CredentialStore holds the single opaque session blob.
type CredentialStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	Delete(ctx context.Context) error
}
