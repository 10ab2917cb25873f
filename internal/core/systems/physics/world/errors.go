package world

import "errors"

var (
	ErrColliderNotFound = errors.New("collider not found")
	ErrColliderExists   = errors.New("collider already exists")
	ErrInvalidCollider  = errors.New("invalid collider")
	ErrInvalidScene     = errors.New("invalid scene description")
)
