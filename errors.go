// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

package ecs

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// DEBUG gates checked-build-only contract assertions (duplicate add,
// absent get, filter lock/unlock imbalance, leaked entities). Release
// builds should flip this to false to drop the checks entirely.
const DEBUG = true

// fail reports a contract violation (§7): a single-shot fatal failure
// carrying a diagnostic message. Contract violations are programmer
// errors and are never recovered from.
func fail(format string, args ...interface{}) {
	panic(bark.AddTrace(fmt.Errorf(format, args...)))
}
