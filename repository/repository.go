// Package repository maps Post and User entities onto MongoDB collections.
// Operations are independent single-document writes; concurrent updates to
// the same document are last-write-wins.
package repository

import "errors"

var (
	ErrNotFound         = errors.New("repository: not found")
	ErrPasswordMismatch = errors.New("repository: passwords do not match")
)
