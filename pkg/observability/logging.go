package observability

import (
	"log/slog"

	"github.com/aretw0/flowdesk/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one Info line per event.
// Rejected edges are logged at Warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(e *domain.CommitEvent) {
			logger.Info("commit",
				"reason", e.Reason,
				"nodes", e.Nodes,
				"edges", e.Edges,
				"history_len", e.HistoryLen,
			)
		},
		OnHistory: func(e *domain.HistoryEvent) {
			logger.Info(e.Direction, "applied", e.Applied, "cursor", e.Cursor)
		},
		OnEdgeRejected: func(e *domain.EdgeRejectedEvent) {
			logger.Warn("edge_rejected", "source", e.Source, "target", e.Target, "err", e.Err)
		},
		OnLoad: func(e *domain.LoadEvent) {
			logger.Info("load",
				"definition_id", e.DefinitionID,
				"nodes", e.Nodes,
				"edges", e.Edges,
				"dropped_edges", e.DroppedEdges,
			)
		},
	}
}
