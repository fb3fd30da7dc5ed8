// Package session holds the ephemeral per-user state for the multi-step
// upload and delete flows, behind a store interface with in-memory and
// Redis backings.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a user has no active session of the
// requested kind.
var ErrNotFound = errors.New("session not found")

// FileRef is one uploaded document attached to an upload session.
type FileRef struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
}

// ImageRef is the poster image attached to an upload session.
type ImageRef struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// UploadSession tracks one user's progress through the upload flow.
// Files grow as documents arrive; a second poster overwrites the first.
type UploadSession struct {
	Files            []FileRef `json:"files"`
	Image            *ImageRef `json:"image,omitempty"`
	MovieName        string    `json:"movie_name,omitempty"`
	AwaitingNameEdit bool      `json:"awaiting_name_edit"`
}

// Ready reports whether the session has everything needed to persist:
// at least one file, a poster, a name, and no pending name edit.
func (s *UploadSession) Ready() bool {
	return s != nil && len(s.Files) > 0 && s.Image != nil && s.MovieName != "" && !s.AwaitingNameEdit
}

func (s *UploadSession) clone() *UploadSession {
	if s == nil {
		return nil
	}
	c := &UploadSession{
		Files:            append([]FileRef(nil), s.Files...),
		MovieName:        s.MovieName,
		AwaitingNameEdit: s.AwaitingNameEdit,
	}
	if s.Image != nil {
		img := *s.Image
		c.Image = &img
	}
	return c
}

// MovieRef is one record of the page snapshot shown to an admin.
type MovieRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeleteSession caches the exact page snapshot an admin is deleting
// from. Delete-by-number indexes into Movies, never a live query.
type DeleteSession struct {
	Page     int        `json:"page"`
	Movies   []MovieRef `json:"movies"`
	Selected *MovieRef  `json:"selected,omitempty"`
}

func (s *DeleteSession) clone() *DeleteSession {
	if s == nil {
		return nil
	}
	c := &DeleteSession{
		Page:   s.Page,
		Movies: append([]MovieRef(nil), s.Movies...),
	}
	if s.Selected != nil {
		sel := *s.Selected
		c.Selected = &sel
	}
	return c
}

// Store persists per-user sessions. Sessions never expire on their own;
// an abandoned flow sticks around until overwritten or dropped.
type Store interface {
	GetUpload(ctx context.Context, userID int64) (*UploadSession, error)
	PutUpload(ctx context.Context, userID int64, s *UploadSession) error
	DropUpload(ctx context.Context, userID int64) error

	GetDelete(ctx context.Context, userID int64) (*DeleteSession, error)
	PutDelete(ctx context.Context, userID int64, s *DeleteSession) error
	DropDelete(ctx context.Context, userID int64) error
}
