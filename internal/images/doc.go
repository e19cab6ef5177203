// Package images implements the cover-image workflow around the bookstore
// gallery API.
//
// Validate gatekeeps uploads before any network traffic: the content type
// must be JPEG, PNG, WebP, or GIF, and the size may not exceed
// MaxUploadBytes (a file of exactly that size is accepted). Form stages
// one candidate file plus its alt text and primary flag; a candidate that
// fails validation never replaces an already staged file, and a failed
// submit leaves the staged file in place so it can be retried without
// re-selecting it.
//
// DisplayURL picks which URL represents a book in listing views: the image
// flagged primary wins, then the first gallery image, then the book's
// legacy image_url. ResolveAll applies that rule across a whole catalog,
// fetching each book's gallery on its own goroutine; a fetch failure is
// isolated to its book, which falls back to the legacy URL.
package images
