package schema

import (
	"testing"

	"github.com/aretw0/flowdesk/pkg/domain"
)

func TestCheckIntegrity_Clean(t *testing.T) {
	if issues := CheckIntegrity(approvalLike()); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestRepair(t *testing.T) {
	def := approvalLike()
	def.Nodes = append(def.Nodes,
		domain.Node{ID: "review", Type: domain.NodeTypeAction, Name: "shadow"},
		domain.Node{Type: domain.NodeTypeAction},
	)
	def.Edges = append(def.Edges,
		domain.Edge{ID: "e5", Source: "check", Target: "ghost"},
		domain.Edge{ID: "e6", Source: "ghost", Target: "ok"},
		domain.Edge{ID: "e7", Source: "ok", Target: "ok"},
		domain.Edge{ID: "e1", Source: "start", Target: "check"},
		domain.Edge{Source: "start", Target: "check"},
	)

	repaired, issues := Repair(def)

	wantKinds := []IssueKind{
		IssueDuplicateNode, IssueEmptyNodeID,
		IssueDanglingEdge, IssueDanglingEdge, IssueSelfLoop, IssueDuplicateEdge, IssueEmptyEdgeID,
	}
	if len(issues) != len(wantKinds) {
		t.Fatalf("expected %d issues, got %d: %+v", len(wantKinds), len(issues), issues)
	}
	for i, kind := range wantKinds {
		if issues[i].Kind != kind {
			t.Errorf("issue %d: kind = %s, want %s", i, issues[i].Kind, kind)
		}
	}

	if len(repaired.Nodes) != 5 {
		t.Errorf("expected 5 nodes after repair, got %d", len(repaired.Nodes))
	}
	if n, _ := repaired.NodeByID("review"); n.Name != "Review" {
		t.Errorf("first node with a duplicated id must win, got %q", n.Name)
	}
	if len(repaired.Edges) != 4 {
		t.Errorf("expected 4 edges after repair, got %d", len(repaired.Edges))
	}
	if issues := CheckIntegrity(repaired); len(issues) != 0 {
		t.Errorf("repaired definition still has issues: %+v", issues)
	}
	if len(def.Edges) != 9 {
		t.Errorf("Repair must not modify its input")
	}

	if err := IntegrityError(issues); len(ValidationErrors(err)) != len(issues) {
		t.Errorf("IntegrityError should carry one error per issue")
	}
	if IntegrityError(nil) != nil {
		t.Errorf("IntegrityError(nil) should be nil")
	}
}
