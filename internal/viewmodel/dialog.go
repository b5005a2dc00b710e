// Package viewmodel holds the client-side state behind each view: fetched
// collections, in-memory filtering and the dialog-mediated mutation flows.
// Dialogs are modeled as an explicit request/response: the caller opens a
// dialog with an immutable snapshot and receives a single eventual result;
// all state reconciliation stays with the caller.
package viewmodel

import "context"

// Dialog presents the input to the user and returns their answer. ok is
// false when the dialog was cancelled, in which case the caller changes
// nothing.
type Dialog[In, Out any] interface {
	Open(ctx context.Context, in In) (out Out, ok bool)
}

// DialogFunc adapts a function to the Dialog interface.
type DialogFunc[In, Out any] func(ctx context.Context, in In) (Out, bool)

func (f DialogFunc[In, Out]) Open(ctx context.Context, in In) (Out, bool) {
	return f(ctx, in)
}

// PostEdit is the result of the edit-post dialog, applied by the caller as a
// shallow merge onto its snapshot.
type PostEdit struct {
	Title   string
	Content string
}

// EditCommentData is the immutable snapshot carried into the edit-comment
// dialog.
type EditCommentData struct {
	CommentID   int
	CurrentText string
}
