package controllers

import "errors"

var (
	ErrInvalidCommandArity = errors.New("invalid command format")
	ErrUnknownCommand      = errors.New("unknown command")
)
