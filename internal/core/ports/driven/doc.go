// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ModelSerializer: Reads and writes NeuroML documents, validating on write
//   - ArtifactStore: Byte storage for model files (local disk, memory or S3)
//   - CellNormaliser: Brings a loaded cell into canonical form
//   - AnnotatorFactory: Builds annotation pipelines from recipe steps
//   - RecipeStore: Named cell and channel recipes
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, annotator, or normaliser package
package driven
