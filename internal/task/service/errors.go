package service

import "errors"

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleAlreadyExists = errors.New("title already exists")
	ErrTaskNotFound       = errors.New("task not found")
)
