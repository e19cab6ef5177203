package ui

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rarefinebooks/backroom/internal/bookstore"
	"github.com/rarefinebooks/backroom/internal/images"
	"github.com/rarefinebooks/backroom/internal/state"
)

// Messages

type loginResultMsg struct {
	session *bookstore.Session
	err     error
}

// snapshotMsg carries the refreshed store snapshot back to the model.
type snapshotMsg state.Snapshot

type bookSavedMsg struct {
	created bool
	err     error
}

type bookDeletedMsg struct {
	title string
	err   error
}

type imagesLoadedMsg struct {
	isbn   string
	images []bookstore.Image
	err    error
}

type uploadDoneMsg struct {
	isbn string
	err  error
}

type imageDeletedMsg struct {
	isbn string
	err  error
}

type orderStatusMsg struct {
	orderID string
	status  bookstore.Status
	err     error
}

type clearNoticeMsg int

// Commands

// logErr records a failed backend call for diagnostics. Output lands in
// the --debug log file when enabled and is discarded otherwise.
func logErr(op string, err error) {
	if err != nil {
		log.Printf("%s: %v", op, err)
	}
}

func loginCmd(ctx context.Context, client bookstore.API, username, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := client.Login(ctx, username, password)
		logErr("login", err)
		return loginResultMsg{session: sess, err: err}
	}
}

// refreshBooksCmd re-fetches the catalog, resolves each book's display
// image, and publishes the result through the store. The server copy is
// authoritative; nothing is patched locally.
func refreshBooksCmd(ctx context.Context, client bookstore.API, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		books, err := client.FetchBooks(ctx)
		if err != nil {
			logErr("fetch books", err)
			store.UpdateBooks(nil, err)
		} else {
			store.UpdateBooks(images.ResolveAll(ctx, client, books), nil)
		}
		return snapshotMsg(store.Snapshot())
	}
}

func refreshOrdersCmd(ctx context.Context, client bookstore.API, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.FetchOrders(ctx)
		logErr("fetch orders", err)
		store.UpdateOrders(orders, err)
		return snapshotMsg(store.Snapshot())
	}
}

func saveBookCmd(ctx context.Context, client bookstore.API, sess *bookstore.Session, book bookstore.Book, create bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if create {
			err = client.CreateBook(ctx, sess, book)
		} else {
			err = client.UpdateBook(ctx, sess, book)
		}
		logErr("save book "+book.ISBN, err)
		return bookSavedMsg{created: create, err: err}
	}
}

func deleteBookCmd(ctx context.Context, client bookstore.API, sess *bookstore.Session, isbn, title string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteBook(ctx, sess, isbn)
		logErr("delete book "+isbn, err)
		return bookDeletedMsg{title: title, err: err}
	}
}

func loadImagesCmd(ctx context.Context, client bookstore.API, isbn string) tea.Cmd {
	return func() tea.Msg {
		imgs, err := client.FetchImages(ctx, isbn)
		logErr("fetch images "+isbn, err)
		return imagesLoadedMsg{isbn: isbn, images: imgs, err: err}
	}
}

// uploadImageCmd reads the staged file and submits it. The form keeps its
// staged file on failure so the submit can be retried as-is.
func uploadImageCmd(ctx context.Context, client bookstore.API, sess *bookstore.Session, isbn string, form images.Form) tea.Cmd {
	return func() tea.Msg {
		upload, err := form.Upload()
		if err != nil {
			logErr("read staged file", err)
			return uploadDoneMsg{isbn: isbn, err: err}
		}
		_, err = client.UploadImage(ctx, sess, isbn, upload)
		logErr("upload image "+isbn, err)
		return uploadDoneMsg{isbn: isbn, err: err}
	}
}

func deleteImageCmd(ctx context.Context, client bookstore.API, sess *bookstore.Session, isbn string, imageID int64) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteImage(ctx, sess, isbn, imageID)
		logErr("delete image "+isbn, err)
		return imageDeletedMsg{isbn: isbn, err: err}
	}
}

func setOrderStatusCmd(ctx context.Context, client bookstore.API, sess *bookstore.Session, orderID string, status bookstore.Status) tea.Cmd {
	return func() tea.Msg {
		err := client.UpdateOrderStatus(ctx, sess, orderID, status)
		logErr("set order status "+orderID, err)
		return orderStatusMsg{orderID: orderID, status: status, err: err}
	}
}
