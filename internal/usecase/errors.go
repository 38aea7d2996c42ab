package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoResumes           = errors.New("no valid resumes")
	ErrDeliveryFailed      = errors.New("email delivery failed")
	ErrDuplicateSubmission = errors.New("submission already in progress")
	ErrInternal            = errors.New("internal error")
)
