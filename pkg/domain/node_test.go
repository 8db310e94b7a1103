package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPosition_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Position
		wantErr bool
	}{
		{name: "object", input: `{"x": 10, "y": -2.5}`, want: domain.Position{X: 10, Y: -2.5}},
		{name: "tuple", input: `[100, 200]`, want: domain.Position{X: 100, Y: 200}},
		{name: "null", input: `null`, want: domain.Position{}},
		{name: "short tuple", input: `[1]`, wantErr: true},
		{name: "garbage", input: `"left"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p domain.Position
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestNode_NullPosition(t *testing.T) {
	var n domain.Node
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","type":"action","position":null}`), &n))
	assert.Equal(t, "a", n.ID)
	assert.Equal(t, domain.Position{}, n.Position)
}

func TestNode_JSONKeys(t *testing.T) {
	n := domain.Node{
		ID:       "a",
		Type:     domain.NodeTypeHumanTask,
		Name:     "Review",
		Position: domain.Position{X: 1, Y: 2},
		Config:   domain.Config{"assignee": "manager"},
	}
	data, err := json.Marshal(n)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "human_task", raw["nodeType"])
	assert.NotContains(t, raw, "description")
	assert.NotContains(t, raw, "metadata")
	assert.Equal(t, map[string]any{"x": 1.0, "y": 2.0}, raw["position"])
}

func TestNode_YAML(t *testing.T) {
	src := `
id: review
nodeType: human_task
name: Review
position: {x: 3, y: 4}
config:
  assignee: lead
  dueOffset: +2h
`
	var n domain.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))
	assert.Equal(t, domain.NodeTypeHumanTask, n.Type)
	assert.Equal(t, domain.Position{X: 3, Y: 4}, n.Position)

	cfg, err := n.TypedConfig()
	require.NoError(t, err)
	assert.Equal(t, domain.HumanTaskConfig{Assignee: "lead", DueOffset: "+2h"}, cfg)
}

func TestPosition_UnmarshalYAML(t *testing.T) {
	var pts []domain.Position
	require.NoError(t, yaml.Unmarshal([]byte("- {x: 1, y: 2}\n- [3, 4]\n"), &pts))
	assert.Equal(t, []domain.Position{{X: 1, Y: 2}, {X: 3, Y: 4}}, pts)

	var p domain.Position
	assert.Error(t, yaml.Unmarshal([]byte("[1, 2, 3]"), &p))
	assert.Error(t, yaml.Unmarshal([]byte("[a, b]"), &p))
}

func TestNode_CloneIsDeep(t *testing.T) {
	n := domain.Node{
		ID: "a",
		Config: domain.Config{
			"parameters": map[string]any{"url": "https://example.com"},
			"recipients": []any{"a@example.com"},
		},
		Metadata: map[string]any{"color": "red"},
	}
	c := n.Clone()
	c.Config["parameters"].(map[string]any)["url"] = "changed"
	c.Config["recipients"].([]any)[0] = "changed"
	c.Metadata["color"] = "blue"

	assert.Equal(t, "https://example.com", n.Config["parameters"].(map[string]any)["url"])
	assert.Equal(t, "a@example.com", n.Config["recipients"].([]any)[0])
	assert.Equal(t, "red", n.Metadata["color"])
}

func TestConfig_Merge(t *testing.T) {
	base := domain.Config{"assignee": "", "dueOffset": "+1d"}
	merged := base.Merge(map[string]any{"assignee": "ops", "custom": 1})

	assert.Equal(t, domain.Config{"assignee": "ops", "dueOffset": "+1d", "custom": 1}, merged)
	assert.Equal(t, "", base["assignee"], "base is not modified")
	assert.Equal(t, domain.Config{"x": 1}, domain.Config(nil).Merge(map[string]any{"x": 1}))
}

func TestConfig_Changes(t *testing.T) {
	base := domain.Config{"duration": "PT1H", "recipients": []any{"a@example.com"}}

	assert.False(t, base.Changes(nil))
	assert.False(t, base.Changes(map[string]any{}))
	assert.False(t, base.Changes(map[string]any{"duration": "PT1H"}))
	assert.False(t, base.Changes(map[string]any{"recipients": []any{"a@example.com"}}), "compared deeply")
	assert.True(t, base.Changes(map[string]any{"duration": "PT2H"}))
	assert.True(t, base.Changes(map[string]any{"extra": nil}), "new key counts even when nil")
	assert.True(t, domain.Config(nil).Changes(map[string]any{"x": 1}))
}

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		typ  domain.NodeType
		raw  domain.Config
		want domain.NodeConfig
	}{
		{domain.NodeTypeStart, nil, domain.StartConfig{}},
		{domain.NodeTypeEnd, domain.Config{"ignored": true}, domain.EndConfig{}},
		{domain.NodeTypeAction, domain.Config{"action": "http", "parameters": map[string]any{"method": "POST"}},
			domain.ActionConfig{Action: "http", Parameters: map[string]any{"method": "POST"}}},
		{domain.NodeTypeDecision, domain.Config{"condition": "${approved}"}, domain.DecisionConfig{Condition: "${approved}"}},
		{domain.NodeTypeHumanTask, domain.Config{
			"assignee":   "manager",
			"escalation": map[string]any{"after": "+1d", "escalateTo": "director"},
		}, domain.HumanTaskConfig{
			Assignee:   "manager",
			Escalation: &domain.EscalationConfig{After: "+1d", EscalateTo: "director"},
		}},
		{domain.NodeTypeTimer, domain.Config{"duration": "PT1H"}, domain.TimerConfig{Duration: "PT1H"}},
		{domain.NodeTypeSubWorkflow, domain.Config{"workflowId": "wf-2", "inputMapping": map[string]any{"a": "b"}},
			domain.SubWorkflowConfig{WorkflowID: "wf-2", InputMapping: map[string]string{"a": "b"}}},
		{domain.NodeTypeScript, domain.Config{"language": "python", "script": "x = 1"}, domain.ScriptConfig{Language: "python", Script: "x = 1"}},
		{domain.NodeTypeNotification, domain.Config{"notificationType": "email", "recipients": []any{"a", "b"}},
			domain.NotificationConfig{NotificationType: "email", Recipients: []string{"a", "b"}}},
		{domain.NodeTypeRule, domain.Config{"ruleId": "r-1"}, domain.RuleConfig{RuleID: "r-1"}},
		{domain.NodeTypeParallelSplit, nil, domain.ParallelConfig{}},
		{domain.NodeTypeParallelJoin, nil, domain.ParallelConfig{Join: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got, err := domain.DecodeConfig(tt.typ, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.typ, got.NodeType())
		})
	}
}

func TestDecodeConfig_Errors(t *testing.T) {
	_, err := domain.DecodeConfig("teleport", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownNodeType)

	_, err = domain.DecodeConfig(domain.NodeTypeHumanTask, domain.Config{"escalation": "tomorrow"})
	assert.ErrorContains(t, err, "decode human_task config")
}

func TestNodeType_Handles(t *testing.T) {
	assert.False(t, domain.NodeTypeStart.HasInput())
	assert.True(t, domain.NodeTypeStart.HasOutput())
	assert.True(t, domain.NodeTypeEnd.HasInput())
	assert.False(t, domain.NodeTypeEnd.HasOutput())

	for _, typ := range domain.NodeTypes {
		parsed, err := domain.ParseNodeType(string(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
	_, err := domain.ParseNodeType("loop")
	assert.ErrorIs(t, err, domain.ErrUnknownNodeType)
}

func TestChainHooks(t *testing.T) {
	var calls []string
	chained := domain.ChainHooks(
		domain.LifecycleHooks{OnCommit: func(*domain.CommitEvent) { calls = append(calls, "first") }},
		domain.LifecycleHooks{},
		domain.LifecycleHooks{
			OnCommit: func(*domain.CommitEvent) { calls = append(calls, "second") },
			OnLoad:   func(*domain.LoadEvent) { calls = append(calls, "load") },
		},
	)

	chained.OnCommit(&domain.CommitEvent{})
	chained.OnLoad(&domain.LoadEvent{})
	chained.OnHistory(&domain.HistoryEvent{})
	chained.OnEdgeRejected(&domain.EdgeRejectedEvent{})

	assert.Equal(t, []string{"first", "second", "load"}, calls)
}

func TestWorkflowDefinition_Outgoing(t *testing.T) {
	def := domain.WorkflowDefinition{
		Nodes: []domain.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []domain.Edge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "b", Target: "c"},
			{ID: "e3", Source: "a", Target: "c"},
		},
	}
	out := def.Outgoing("a")
	require.Len(t, out, 2)
	assert.Equal(t, "e3", out[1].ID)

	_, ok := def.NodeByID("z")
	assert.False(t, ok)
}
