package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrEmptyResponse    = errors.New("empty response from generator")
	ErrImageBlocked     = errors.New("image generation blocked")
	ErrNoImage          = errors.New("no image in response")
	ErrCategoryEmpty    = errors.New("category name is empty")
	ErrCategoryExists   = errors.New("category already exists")
	ErrSentinelCategory = errors.New("the default category cannot be deleted")
)
