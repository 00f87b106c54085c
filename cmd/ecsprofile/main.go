// Command ecsprofile profiles entity churn through an ecs.World:
// repeated rounds of entity creation, a filtered pass over them, and
// destruction.
//
// Build and run:
//
//	go build ./cmd/ecsprofile
//	./ecsprofile
//	go tool pprof -http=":8000" -nodefraction=0.001 ./ecsprofile mem.pprof
package main

import (
	"github.com/TheBitDrifter/bark"
	"github.com/kestrel-ecs/ecs"
	"github.com/pkg/profile"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }

func main() {
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	defer p.Stop()
	if err := run(50, 1000, 2000); err != nil {
		panic(bark.AddTrace(err))
	}
}

func run(rounds, iters, numEntities int) error {
	for i := 0; i < rounds; i++ {
		w := ecs.NewWorld(ecs.DefaultConfig())
		positions := ecs.PoolOf[position](w)
		velocities := ecs.PoolOf[velocity](w)
		moving := ecs.Inc[velocity](ecs.NewMaskBuilder[position](w)).End(numEntities)

		for j := 0; j < iters; j++ {
			for k := 0; k < numEntities; k++ {
				e := w.NewEntity()
				positions.Add(e)
				velocities.Add(e)
			}
			moving.ForEach(func(e ecs.Entity) {
				pos := positions.Get(e)
				vel := velocities.Get(e)
				pos.X += vel.X
				pos.Y += vel.Y
			})
			moving.ForEach(func(e ecs.Entity) {
				w.DelEntity(e)
			})
		}
	}
	return nil
}
