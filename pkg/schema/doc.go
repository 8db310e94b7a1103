// Package schema checks WorkflowDefinition records for structural problems.
//
// Two levels are provided:
//
//   - Integrity (CheckIntegrity / Repair): problems that make a definition
//     unusable as an editor graph, such as edges pointing at missing nodes,
//     self-loops or duplicated ids. The editor either repairs them on load by
//     dropping the offending elements, or rejects the definition.
//
//   - Publishing rules (ValidateDefinition): integrity plus the rules a
//     workflow must satisfy before it can run, for example exactly one start
//     node and at least two outgoing edges per decision node.
//
// All failures are collected into an *AggregateError so callers can show
// every problem at once:
//
//	if err := schema.ValidateDefinition(def); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
package schema
