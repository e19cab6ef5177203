package images

import (
	"context"
	"sync"

	"github.com/rarefinebooks/backroom/internal/bookstore"
)

// Listing pairs a book with its resolved display image for inventory views.
type Listing struct {
	bookstore.Book
	DisplayURL string
	HasImages  bool
}

// DisplayURL resolves which URL represents a book in listing views:
// the image flagged primary, else the first image, else the book's legacy
// image URL.
func DisplayURL(book bookstore.Book, imgs []bookstore.Image) string {
	for _, img := range imgs {
		if img.IsPrimary && img.ScalewayURL != "" {
			return img.ScalewayURL
		}
	}
	if len(imgs) > 0 && imgs[0].ScalewayURL != "" {
		return imgs[0].ScalewayURL
	}
	return book.ImageURL
}

// Fetcher is the image-list lookup ResolveAll needs. *bookstore.Client
// implements it.
type Fetcher interface {
	FetchImages(ctx context.Context, isbn string) ([]bookstore.Image, error)
}

var _ Fetcher = (*bookstore.Client)(nil)

// ResolveAll fetches each book's image list concurrently and resolves its
// display image. A failed fetch for one book degrades that book to its
// legacy URL; sibling books are unaffected. Result order matches the input.
func ResolveAll(ctx context.Context, fetcher Fetcher, books []bookstore.Book) []Listing {
	if len(books) == 0 {
		return nil
	}
	listings := make([]Listing, len(books))
	var wg sync.WaitGroup
	for i, book := range books {
		wg.Add(1)
		go func(i int, book bookstore.Book) {
			defer wg.Done()
			listing := Listing{Book: book, DisplayURL: book.ImageURL}
			imgs, err := fetcher.FetchImages(ctx, book.ISBN)
			if err == nil {
				listing.DisplayURL = DisplayURL(book, imgs)
				listing.HasImages = len(imgs) > 0
			}
			listings[i] = listing
		}(i, book)
	}
	wg.Wait()
	return listings
}
