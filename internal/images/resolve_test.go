package images

import (
	"context"
	"errors"
	"testing"

	"github.com/rarefinebooks/backroom/internal/bookstore"
)

type fakeFetcher struct {
	images map[string][]bookstore.Image
	fail   map[string]bool
}

func (f *fakeFetcher) FetchImages(_ context.Context, isbn string) ([]bookstore.Image, error) {
	if f.fail[isbn] {
		return nil, errors.New("fetch failed")
	}
	return f.images[isbn], nil
}

func TestDisplayURL_Priority(t *testing.T) {
	book := bookstore.Book{ISBN: "1", ImageURL: "https://legacy.example/cover.jpg"}

	if got := DisplayURL(book, nil); got != book.ImageURL {
		t.Fatalf("zero images: DisplayURL = %q, want legacy %q", got, book.ImageURL)
	}

	noPrimary := []bookstore.Image{
		{ID: 1, ScalewayURL: "https://img.example/first.png"},
		{ID: 2, ScalewayURL: "https://img.example/second.png"},
	}
	if got := DisplayURL(book, noPrimary); got != "https://img.example/first.png" {
		t.Fatalf("no primary: DisplayURL = %q, want first image", got)
	}

	// The primary wins regardless of its position in the list.
	withPrimary := []bookstore.Image{
		{ID: 1, ScalewayURL: "https://img.example/first.png"},
		{ID: 2, ScalewayURL: "https://img.example/second.png"},
		{ID: 3, ScalewayURL: "https://img.example/chosen.png", IsPrimary: true},
	}
	if got := DisplayURL(book, withPrimary); got != "https://img.example/chosen.png" {
		t.Fatalf("primary last: DisplayURL = %q, want chosen", got)
	}
	reordered := []bookstore.Image{withPrimary[2], withPrimary[0], withPrimary[1]}
	if got := DisplayURL(book, reordered); got != "https://img.example/chosen.png" {
		t.Fatalf("primary first: DisplayURL = %q, want chosen", got)
	}

	// A primary with no URL falls through rather than blanking the listing.
	blankPrimary := []bookstore.Image{
		{ID: 1, ScalewayURL: "", IsPrimary: true},
		{ID: 2, ScalewayURL: "https://img.example/second.png"},
	}
	if got := DisplayURL(book, blankPrimary); got != "https://img.example/second.png" {
		t.Fatalf("blank primary: DisplayURL = %q, want fallback to first non-empty", got)
	}
}

func TestResolveAll_IsolatesFailures(t *testing.T) {
	books := []bookstore.Book{
		{ISBN: "a", ImageURL: "https://legacy.example/a.jpg"},
		{ISBN: "b", ImageURL: "https://legacy.example/b.jpg"},
		{ISBN: "c", ImageURL: "https://legacy.example/c.jpg"},
	}
	fetcher := &fakeFetcher{
		images: map[string][]bookstore.Image{
			"a": {{ID: 1, ScalewayURL: "https://img.example/a1.png", IsPrimary: true}},
			"c": {},
		},
		fail: map[string]bool{"b": true},
	}

	listings := ResolveAll(context.Background(), fetcher, books)
	if len(listings) != 3 {
		t.Fatalf("listings = %d, want 3", len(listings))
	}
	if listings[0].ISBN != "a" || listings[0].DisplayURL != "https://img.example/a1.png" || !listings[0].HasImages {
		t.Fatalf("listing a = %#v, want primary image", listings[0])
	}
	// The failed fetch degrades to the legacy URL without touching siblings.
	if listings[1].ISBN != "b" || listings[1].DisplayURL != "https://legacy.example/b.jpg" || listings[1].HasImages {
		t.Fatalf("listing b = %#v, want legacy fallback", listings[1])
	}
	if listings[2].ISBN != "c" || listings[2].DisplayURL != "https://legacy.example/c.jpg" || listings[2].HasImages {
		t.Fatalf("listing c = %#v, want legacy fallback for empty set", listings[2])
	}
}

func TestResolveAll_EmptyInput(t *testing.T) {
	if got := ResolveAll(context.Background(), &fakeFetcher{}, nil); got != nil {
		t.Fatalf("ResolveAll(nil) = %#v, want nil", got)
	}
}
