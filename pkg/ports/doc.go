/*
Package ports defines the driven ports (interfaces) of the planner.

These interfaces decouple the search core from external implementations, allowing
the planner to work with various action graphs, catalogue sources and result stores.

# Key Interfaces

  - ActionGraph / Collaborators: The six functions describing a planning problem.
  - CatalogueLoader: Responsible for loading action definitions (e.g., from Loam or Memory).
  - ResultStore: Shares memoized plans between planner instances.
  - DistributedLocker: Provides distributed locking around cache fills.
  - Planner: What transport adapters (HTTP, MCP) need from the planner.
*/
package ports
