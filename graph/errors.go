package graph

import (
	"github.com/pkg/errors"
)

var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrDuplicateEdge = errors.New("duplicate edge")
	ErrUnknownNode   = errors.New("unknown node")
	ErrUnknownEdge   = errors.New("unknown edge")
	ErrTraversalNode = errors.New("traversal edges do not share a node")
)
