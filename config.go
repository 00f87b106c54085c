// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

package ecs

// Config carries the initial capacities a World is constructed with.
// All fields must be positive; zero values are replaced by
// DefaultConfig's defaults.
type Config struct {
	// Entities is the initial capacity of the entity table.
	Entities int
	// RecycledEntities is the initial capacity of the dead-id recycle stack.
	RecycledEntities int
	// Pools is the initial capacity of the pool directory.
	Pools int
	// Filters is the initial capacity of the filter directory.
	Filters int
}

// DefaultConfig returns sensible defaults: 512 for every capacity.
func DefaultConfig() Config {
	return Config{
		Entities:         512,
		RecycledEntities: 512,
		Pools:            512,
		Filters:          512,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Entities <= 0 {
		c.Entities = d.Entities
	}
	if c.RecycledEntities <= 0 {
		c.RecycledEntities = d.RecycledEntities
	}
	if c.Pools <= 0 {
		c.Pools = d.Pools
	}
	if c.Filters <= 0 {
		c.Filters = d.Filters
	}
	return c
}
