package ecs

import "errors"

var (
	ErrNilEntity     = errors.New("ecs: nil entity")
	ErrEntityRemoved = errors.New("ecs: entity was removed from its world")
	ErrEntityExists  = errors.New("ecs: entity already in this world")
	ErrForeignEntity = errors.New("ecs: entity belongs to another world")
	ErrDuplicateID   = errors.New("ecs: another entity with this id is in the world")
)
