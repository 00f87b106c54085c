// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

// Package ecs is a lightweight, single-threaded Entity-Component-System
// core: a World storing entities and typed component Pools, and
// Filters that maintain incrementally-updated sets of entities matching
// an include/exclude mask of component types.
package ecs
