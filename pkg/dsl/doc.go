/*
Package dsl provides a fluent Go builder for workflow definitions.

It is the programmatic counterpart of a JSON or YAML definition file: useful
for templates shipped with the editor, for tests, and for generating
definitions without a canvas.

Example usage:

	b := dsl.New("Expense approval").Category("approval")

	b.Add("start").Start().At(100, 200).Go("review")

	b.Add("review").HumanTask("manager").At(300, 200).Go("done")

	b.Add("done").End().At(500, 200)

	def, err := b.Build()

Names and config defaults that are not set explicitly come from the node
template catalog. Edge ids are assigned in declaration order (e1, e2, ...).
*/
package dsl
