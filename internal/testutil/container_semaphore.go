// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"strconv"
	"sync"
)

var (
	containerSlots     chan struct{}
	containerSlotsOnce sync.Once
)

// ContainerSemaphore gates container-backed tests so only a few talk to the
// engine at once. A slot is held between send and receive:
//
//	sem := testutil.ContainerSemaphore()
//	sem <- struct{}{}
//	defer func() { <-sem }()
//
// Capacity defaults to min(GOMAXPROCS, 2) because Podman on small CI runners
// hangs rather than erroring when overcommitted. FROST_TEST_CONTAINER_PARALLEL
// overrides the cap.
func ContainerSemaphore() chan struct{} {
	containerSlotsOnce.Do(func() {
		n := min(runtime.GOMAXPROCS(0), 2)
		if v, err := strconv.Atoi(os.Getenv("FROST_TEST_CONTAINER_PARALLEL")); err == nil && v > 0 {
			n = v
		}
		containerSlots = make(chan struct{}, n)
	})
	return containerSlots
}
