package ports

import "context"

// Platform opens authenticated channels, either interactively or from an exported session blob.
type Platform interface {
	Login(ctx context.Context, account, secret string) (Channel, error)
	Resume(ctx context.Context, blob []byte) (Channel, error)
}

type Channel interface {
	Account() string
	Export() ([]byte, error)
	Logout(ctx context.Context) error
	PublishSingle(ctx context.Context, imagePath, caption string) error
	PublishCarousel(ctx context.Context, imagePaths []string, caption string) error
}
