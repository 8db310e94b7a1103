package domain

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Config is the raw, JSON-compatible configuration of a node.
type Config map[string]any

// Clone returns a deep copy of the map and of any nested maps or slices.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge returns a new Config with partial shallow-merged over c.
// Neither input is modified.
func (c Config) Merge(partial map[string]any) Config {
	out := make(Config, len(c)+len(partial))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range partial {
		out[k] = cloneValue(v)
	}
	return out
}

// Changes reports whether merging partial into c would alter any key.
func (c Config) Changes(partial map[string]any) bool {
	for k, v := range partial {
		cur, ok := c[k]
		if !ok || !reflect.DeepEqual(cur, v) {
			return true
		}
	}
	return false
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return map[string]any(Config(val).Clone())
	case Config:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}

// NodeConfig is the typed view of a node's Config. The concrete type is
// selected by the node type; see DecodeConfig.
type NodeConfig interface {
	NodeType() NodeType
	nodeConfig()
}

// StartConfig carries no settings.
type StartConfig struct{}

// EndConfig carries no settings.
type EndConfig struct{}

// ActionConfig configures an action node.
type ActionConfig struct {
	Action     string         `mapstructure:"action"`
	Parameters map[string]any `mapstructure:"parameters"`
}

// DecisionConfig configures a decision node. Either Condition or RuleID is set.
type DecisionConfig struct {
	Condition string `mapstructure:"condition"`
	RuleID    string `mapstructure:"ruleId"`
}

// EscalationConfig describes what happens when a human task is late.
type EscalationConfig struct {
	After      string `mapstructure:"after"`
	EscalateTo string `mapstructure:"escalateTo"`
	Action     string `mapstructure:"action"`
}

// HumanTaskConfig configures a human task node.
type HumanTaskConfig struct {
	Assignee   string            `mapstructure:"assignee"`
	DueOffset  string            `mapstructure:"dueOffset"` // e.g. "+1d", "+2h"
	FormSchema map[string]any    `mapstructure:"formSchema"`
	Escalation *EscalationConfig `mapstructure:"escalation"`
}

// TimerConfig configures a timer node.
type TimerConfig struct {
	Duration string `mapstructure:"duration"` // ISO-8601, e.g. "PT1H"
	Until    string `mapstructure:"until"`
	Cron     string `mapstructure:"cron"`
}

// SubWorkflowConfig configures a sub-workflow node.
type SubWorkflowConfig struct {
	WorkflowID    string            `mapstructure:"workflowId"`
	InputMapping  map[string]string `mapstructure:"inputMapping"`
	OutputMapping map[string]string `mapstructure:"outputMapping"`
}

// ScriptConfig configures a script node.
type ScriptConfig struct {
	Language string `mapstructure:"language"` // javascript, python, expression
	Script   string `mapstructure:"script"`
}

// NotificationConfig configures a notification node.
type NotificationConfig struct {
	NotificationType string   `mapstructure:"notificationType"` // email, sms, push, webhook
	Recipients       []string `mapstructure:"recipients"`
	TemplateID       string   `mapstructure:"templateId"`
}

// RuleConfig configures a rule node.
type RuleConfig struct {
	RuleID string `mapstructure:"ruleId"`
}

// ParallelConfig is shared by split and join nodes, neither of which has settings.
type ParallelConfig struct {
	Join bool `mapstructure:"-"`
}

func (StartConfig) NodeType() NodeType        { return NodeTypeStart }
func (EndConfig) NodeType() NodeType          { return NodeTypeEnd }
func (ActionConfig) NodeType() NodeType       { return NodeTypeAction }
func (DecisionConfig) NodeType() NodeType     { return NodeTypeDecision }
func (HumanTaskConfig) NodeType() NodeType    { return NodeTypeHumanTask }
func (TimerConfig) NodeType() NodeType        { return NodeTypeTimer }
func (SubWorkflowConfig) NodeType() NodeType  { return NodeTypeSubWorkflow }
func (ScriptConfig) NodeType() NodeType       { return NodeTypeScript }
func (NotificationConfig) NodeType() NodeType { return NodeTypeNotification }
func (RuleConfig) NodeType() NodeType         { return NodeTypeRule }

func (c ParallelConfig) NodeType() NodeType {
	if c.Join {
		return NodeTypeParallelJoin
	}
	return NodeTypeParallelSplit
}

func (StartConfig) nodeConfig()        {}
func (EndConfig) nodeConfig()          {}
func (ActionConfig) nodeConfig()       {}
func (DecisionConfig) nodeConfig()     {}
func (HumanTaskConfig) nodeConfig()    {}
func (TimerConfig) nodeConfig()        {}
func (SubWorkflowConfig) nodeConfig()  {}
func (ScriptConfig) nodeConfig()       {}
func (NotificationConfig) nodeConfig() {}
func (RuleConfig) nodeConfig()         {}
func (ParallelConfig) nodeConfig()     {}

// DecodeConfig converts raw into the NodeConfig variant for t.
// Keys that are not part of the variant are ignored.
func DecodeConfig(t NodeType, raw Config) (NodeConfig, error) {
	switch t {
	case NodeTypeStart:
		return StartConfig{}, nil
	case NodeTypeEnd:
		return EndConfig{}, nil
	case NodeTypeParallelSplit:
		return ParallelConfig{}, nil
	case NodeTypeParallelJoin:
		return ParallelConfig{Join: true}, nil
	case NodeTypeAction:
		return decodeInto[ActionConfig](raw)
	case NodeTypeDecision:
		return decodeInto[DecisionConfig](raw)
	case NodeTypeHumanTask:
		return decodeInto[HumanTaskConfig](raw)
	case NodeTypeTimer:
		return decodeInto[TimerConfig](raw)
	case NodeTypeSubWorkflow:
		return decodeInto[SubWorkflowConfig](raw)
	case NodeTypeScript:
		return decodeInto[ScriptConfig](raw)
	case NodeTypeNotification:
		return decodeInto[NotificationConfig](raw)
	case NodeTypeRule:
		return decodeInto[RuleConfig](raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, t)
	}
}

func decodeInto[T NodeConfig](raw Config) (NodeConfig, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]any(raw)); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", out.NodeType(), err)
	}
	return out, nil
}
