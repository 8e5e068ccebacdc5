package identity

import "errors"

var (
	ErrAliasNotFound          = errors.New("alias mapping not found")
	ErrAliasExists            = errors.New("alias mapping already exists for this name")
	ErrNotVirtualIdentity     = errors.New("identity is not a virtual identity")
	ErrVirtualIdentityUnknown = errors.New("no records reference this virtual identity")
	ErrUnresolvable           = errors.New("row carries no name or tax id to resolve")
)
