/*
Package ports defines the driven ports (interfaces) around the decoder.

These interfaces decouple the engine from where model definitions live, so the
same engine can serve models from memory, Redis, or a directory of documents.

# Key Interfaces

  - ModelLoader: read-only access to named definitions (Loam, files, memory).
  - ModelStore: a ModelLoader that can also save and delete definitions.
  - Watchable: loaders that can report when a definition changed on disk.
*/
package ports
