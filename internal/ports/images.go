package ports

import "context"

// ImageSource returns the local path of a downloaded image matching query.
type ImageSource interface {
	Fetch(ctx context.Context, query string) (string, error)
}

// ImageComposer renders title and body onto the source image and returns the output path.
type ImageComposer interface {
	Compose(ctx context.Context, sourcePath, body, title string) (string, error)
}
