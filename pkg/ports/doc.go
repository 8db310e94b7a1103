/*
Package ports defines the driven ports (interfaces) of the editor.

These interfaces decouple the editor core from storage backends. A host
saves what Session.Serialize produces and feeds a loaded definition back
into Session.Load.

# Key Interfaces

  - DefinitionStore: persists and loads workflow definitions by id.
*/
package ports
