/*
Package domain contains the core models of the planner.

It defines the numeric world-state, the action catalogue, the frontier and the
explicit search context. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - State: Immutable sparse numeric record with content-based equality and hashing.
  - MergePolicy: Chooses how effect deltas are folded into a blackboard (globally or per key).
  - Action / Catalogue: Cost, precondition minimums and effect deltas per action key.
  - Node / Path / Plan: Trajectory elements and the result of a search.
  - Frontier: Priority queue of candidates with tuple-level dedup and an optional cap.
  - Search: The plain-data context threaded through every search step.
*/
package domain
