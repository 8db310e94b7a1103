/*
Package domain contains the core models of the flowdesk workflow editor.

It defines the entities the editor manipulates and serializes. The package is
kept free of I/O so it can be shared by the editor core, the stores and the CLI.

# Key Entities

  - Node: a workflow step typed by NodeType, placed at a logical Position.
  - Edge: a directed connection between two nodes.
  - Config / NodeConfig: the raw node settings and their typed, per-type view.
  - WorkflowDefinition: the serialized graph exchanged with external collaborators.
  - LifecycleHooks: callbacks fired on commits, undo/redo, rejected edges and loads.
*/
package domain
