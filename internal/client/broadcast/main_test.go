package broadcast

import (
	"testing"

	"go.uber.org/goleak"
)

// The relay owns a watcher goroutine; every test must leave it stopped.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
