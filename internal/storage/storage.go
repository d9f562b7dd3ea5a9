// Package storage is the blob bucket for product images and payment proofs.
// Save hands back the public URL the stored object is reachable at.
package storage

import (
	"context"
	"io"
)

// PlaceholderImageURL is written onto a product when its image upload fails
// or no image was supplied, so a product row never points at a missing image.
const PlaceholderImageURL = "/placeholder.jpg"

// Store persists uploaded blobs and returns their public reference URL
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
