package client

import "errors"

var (
	errNilDependency  = errors.New("nil dependency passed to client app")
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
	errNotLoggedIn    = errors.New("not logged in, use 'login' or 'register' first")
)
