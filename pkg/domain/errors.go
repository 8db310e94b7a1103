package domain

import "errors"

// ErrInvalidEdge is returned when an edge would be a self-loop or would
// reference a node that does not exist.
var ErrInvalidEdge = errors.New("invalid edge")

// ErrNodeNotFound is returned by gestures that must start on an existing node.
// Session mutations on missing ids are no-ops and never return it.
var ErrNodeNotFound = errors.New("node not found")

// ErrDuplicateNode is returned when inserting a node whose id is already in use.
var ErrDuplicateNode = errors.New("duplicate node id")

// ErrUnknownNodeType is returned for node types outside the known enumeration
// or missing from the template catalog.
var ErrUnknownNodeType = errors.New("unknown node type")

// ErrInvalidDefinition wraps every validation failure of a WorkflowDefinition.
var ErrInvalidDefinition = errors.New("invalid workflow definition")

// ErrDefinitionNotFound is returned when a definition id cannot be found in a store.
var ErrDefinitionNotFound = errors.New("definition not found")
