package ui

import (
	"testing"

	"github.com/rarefinebooks/backroom/internal/bookstore"
	"github.com/rarefinebooks/backroom/internal/images"
)

func listing(isbn, title, author string) images.Listing {
	return images.Listing{Book: bookstore.Book{ISBN: isbn, Title: title, Author: author}}
}

func TestFilterBooks(t *testing.T) {
	books := []images.Listing{
		listing("978-0-06-112008-4", "To Kill a Mockingbird", "Harper Lee"),
		listing("978-0-452-28423-4", "1984", "George Orwell"),
		listing("978-0-14-017739-8", "Of Mice and Men", "John Steinbeck"),
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"To Kill a Mockingbird", "1984", "Of Mice and Men"}},
		{"mockingbird", []string{"To Kill a Mockingbird"}},
		{"ORWELL", []string{"1984"}},
		{"978-0-14", []string{"Of Mice and Men"}},
		{"  men  ", []string{"Of Mice and Men"}},
		{"dune", nil},
	}

	for _, tc := range tests {
		got := filterBooks(books, tc.query)
		if len(got) != len(tc.want) {
			t.Errorf("filterBooks(%q) returned %d books, want %d", tc.query, len(got), len(tc.want))
			continue
		}
		for i, title := range tc.want {
			if got[i].Title != title {
				t.Errorf("filterBooks(%q)[%d] = %q, want %q", tc.query, i, got[i].Title, title)
			}
		}
	}
}

func TestFilterBooksDoesNotMutateInput(t *testing.T) {
	books := []images.Listing{
		listing("1", "Alpha", "A"),
		listing("2", "Beta", "B"),
	}
	_ = filterBooks(books, "beta")
	if books[0].Title != "Alpha" || books[1].Title != "Beta" {
		t.Fatal("filterBooks mutated its input")
	}
}
