/*
Package domain contains the core model of the check-chain evaluation engine.

A check chain is a left-to-right sequence of checks. Each check receives a State,
inspects the submitted and reference documents at the State's scope and returns
a narrower child State. The chain stops at the first error.

# Key Entities

  - State: an immutable node of the derivation tree (scope, context path, history).
  - Failure: the signal raised when the submission does not meet an expectation.
  - InstructorError: a defect of the reference document or check configuration.
  - ArgumentError: a malformed check argument, rejected before any inspection.
  - Outcome: the variant used at the evaluation boundary to tell those apart.
  - LifecycleHooks: callbacks for observability.
*/
package domain
