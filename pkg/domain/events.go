package domain

import "time"

// CommitReason names the editor operation that produced a history entry.
type CommitReason string

const (
	CommitAddNode  CommitReason = "add_node"
	CommitMoveNode CommitReason = "move_node"
	CommitRemove   CommitReason = "remove"
	CommitAddEdge  CommitReason = "add_edge"
	CommitEditNode CommitReason = "edit_node"
	CommitEditEdge CommitReason = "edit_edge"
)

// CommitEvent is emitted after a snapshot is appended to the history.
type CommitEvent struct {
	Timestamp  time.Time    `json:"timestamp"`
	Reason     CommitReason `json:"reason"`
	Nodes      int          `json:"nodes"`
	Edges      int          `json:"edges"`
	HistoryLen int          `json:"history_len"`
}

// HistoryEvent is emitted on every undo or redo request, including no-ops.
type HistoryEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Direction string    `json:"direction"` // "undo" or "redo"
	Applied   bool      `json:"applied"`
	Cursor    int       `json:"cursor"`
}

// EdgeRejectedEvent is emitted when a connection attempt fails.
type EdgeRejectedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Err       error     `json:"-"`
}

// LoadEvent is emitted after a definition replaced the editor graph.
type LoadEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	DefinitionID string    `json:"definition_id"`
	Nodes        int       `json:"nodes"`
	Edges        int       `json:"edges"`
	DroppedEdges int       `json:"dropped_edges"`
}

// LifecycleHooks defines callbacks for editor observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnCommit       func(*CommitEvent)
	OnHistory      func(*HistoryEvent)
	OnEdgeRejected func(*EdgeRejectedEvent)
	OnLoad         func(*LoadEvent)
}

// ChainHooks returns hooks that call each of the given hooks in order.
func ChainHooks(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommit: func(e *CommitEvent) {
			for _, h := range hooks {
				if h.OnCommit != nil {
					h.OnCommit(e)
				}
			}
		},
		OnHistory: func(e *HistoryEvent) {
			for _, h := range hooks {
				if h.OnHistory != nil {
					h.OnHistory(e)
				}
			}
		},
		OnEdgeRejected: func(e *EdgeRejectedEvent) {
			for _, h := range hooks {
				if h.OnEdgeRejected != nil {
					h.OnEdgeRejected(e)
				}
			}
		},
		OnLoad: func(e *LoadEvent) {
			for _, h := range hooks {
				if h.OnLoad != nil {
					h.OnLoad(e)
				}
			}
		},
	}
}
