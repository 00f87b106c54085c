// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

package ecs

// System is the base interface every scheduler-managed system
// implements. SystemTypes declares, via bit flags, which of the
// PreInit/Init/Run/Destroy/PostDestroy phase interfaces the system
// also implements.
//
// The scheduler here is the thin orchestrator described in §6: the
// core (World/Pool/Filter) has no dependency on it, but it is the
// sanctioned way to drive user logic over a world's filters in a
// stable, documented order.
type System interface {
	SystemTypes() SystemType
}

// PreInitSystem runs once, before Init, in registration order.
type PreInitSystem interface {
	PreInit(s *Scheduler)
}

// InitSystem runs once, after every PreInit, in registration order.
type InitSystem interface {
	Init(s *Scheduler)
}

// RunSystem runs every tick, in registration order.
type RunSystem interface {
	Run(s *Scheduler)
}

// DestroySystem runs once at shutdown, in reverse registration order.
type DestroySystem interface {
	Destroy(s *Scheduler)
}

// PostDestroySystem runs once after every DestroySystem, in reverse
// registration order.
type PostDestroySystem interface {
	PostDestroy(s *Scheduler)
}

// SystemType is a bit-flag set declaring which phase interfaces a
// System supports.
type SystemType uint8

const (
	PreInitSystemType SystemType = 1 << iota
	InitSystemType
	RunSystemType
	DestroySystemType
	PostDestroySystemType
)

// Scheduler drives registered systems through their lifecycle phases
// and gives them access to named worlds and optional shared user data.
// It is the out-of-core orchestrator: apart from the debug-only leak
// checks (World.checkLeakedEntities and World.checkLeakedFilters) it
// uses only World's exported surface and never touches its fields.
type Scheduler struct {
	preInit     []PreInitSystem
	init        []InitSystem
	run         []RunSystem
	destroy     []DestroySystem
	postDestroy []PostDestroySystem
	worlds      map[string]*World
	shared      interface{}
}

// NewScheduler returns a Scheduler carrying the given shared user data.
func NewScheduler(shared interface{}) *Scheduler {
	return &Scheduler{worlds: make(map[string]*World), shared: shared}
}

// World returns the world registered under key, or nil.
func (s *Scheduler) World(key string) *World {
	return s.worlds[key]
}

// SetWorld registers (or, passing nil, unregisters) a world under key
// for later retrieval by systems via Scheduler.World.
func (s *Scheduler) SetWorld(key string, world *World) *Scheduler {
	if world != nil {
		s.worlds[key] = world
	} else {
		delete(s.worlds, key)
	}
	return s
}

// Shared returns the optional shared user data passed to NewScheduler.
func (s *Scheduler) Shared() interface{} {
	return s.shared
}

// Add registers a system for every phase it declares via SystemTypes.
func (s *Scheduler) Add(system System) *Scheduler {
	types := system.SystemTypes()
	if DEBUG && types == 0 {
		fail("ecs: system %T declares no SystemType support", system)
	}
	if types&PreInitSystemType != 0 {
		sys, ok := system.(PreInitSystem)
		if DEBUG && !ok {
			fail("ecs: system %T declares PreInitSystemType but does not implement PreInitSystem", system)
		}
		s.preInit = append(s.preInit, sys)
	}
	if types&InitSystemType != 0 {
		sys, ok := system.(InitSystem)
		if DEBUG && !ok {
			fail("ecs: system %T declares InitSystemType but does not implement InitSystem", system)
		}
		s.init = append(s.init, sys)
	}
	if types&RunSystemType != 0 {
		sys, ok := system.(RunSystem)
		if DEBUG && !ok {
			fail("ecs: system %T declares RunSystemType but does not implement RunSystem", system)
		}
		s.run = append(s.run, sys)
	}
	if types&DestroySystemType != 0 {
		sys, ok := system.(DestroySystem)
		if DEBUG && !ok {
			fail("ecs: system %T declares DestroySystemType but does not implement DestroySystem", system)
		}
		s.destroy = append(s.destroy, sys)
	}
	if types&PostDestroySystemType != 0 {
		sys, ok := system.(PostDestroySystem)
		if DEBUG && !ok {
			fail("ecs: system %T declares PostDestroySystemType but does not implement PostDestroySystem", system)
		}
		s.postDestroy = append(s.postDestroy, sys)
	}
	return s
}

func (s *Scheduler) checkWorlds(phase string, system interface{}) {
	if !DEBUG {
		return
	}
	for _, w := range s.worlds {
		if e, leaked := w.checkLeakedEntities(); leaked {
			fail("ecs: entity %v leaked (zero components) after %T.%s()", e, system, phase)
		}
		if w.checkLeakedFilters() {
			fail("ecs: filter lock/unlock imbalance detected after %T.%s()", system, phase)
		}
	}
}

// Init runs every PreInitSystem, then every InitSystem, each in
// registration order.
func (s *Scheduler) Init() {
	for _, sys := range s.preInit {
		sys.PreInit(s)
		s.checkWorlds("PreInit", sys)
	}
	for _, sys := range s.init {
		sys.Init(s)
		s.checkWorlds("Init", sys)
	}
}

// Run runs every RunSystem once, in registration order.
func (s *Scheduler) Run() {
	for _, sys := range s.run {
		sys.Run(s)
		s.checkWorlds("Run", sys)
	}
}

// Destroy runs every DestroySystem, then every PostDestroySystem, each
// in reverse registration order.
func (s *Scheduler) Destroy() {
	for i := len(s.destroy) - 1; i >= 0; i-- {
		sys := s.destroy[i]
		sys.Destroy(s)
		s.checkWorlds("Destroy", sys)
	}
	for i := len(s.postDestroy) - 1; i >= 0; i-- {
		sys := s.postDestroy[i]
		sys.PostDestroy(s)
		s.checkWorlds("PostDestroy", sys)
	}
}
