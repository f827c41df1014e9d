/*
Package ports defines the driven ports (interfaces) of the markcheck engine.

These interfaces decouple evaluation from external implementations, allowing
the engine to work with various storage backends and exercise catalogs.

# Key Interfaces

  - Evaluator: the grading core as used by HTTP, MCP and CLI adapters.
  - ResultCache: stores evaluation payloads keyed by a digest of the inputs.
  - ExerciseLoader: retrieves exercises (reference document plus script) by id.
*/
package ports
