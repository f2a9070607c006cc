package model

import "errors"

var (
	// ErrValidation marks an entry rejected before it reaches the books.
	ErrValidation = errors.New("validation error")

	// ErrUnbalancedEntry marks an entry whose debit and credit amounts differ.
	ErrUnbalancedEntry = errors.New("debit amount does not equal credit amount")

	// ErrForeignOwner marks an entry handed to the engine for the wrong owner.
	ErrForeignOwner = errors.New("entry belongs to another owner")

	ErrUnknownCategory = errors.New("unknown account category")
)
