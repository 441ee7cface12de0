package ens

import (
	"testing"

	"go.uber.org/goleak"
)

// verify no goroutine leaks across tests in this package; the text record
// fan-out must always join its workers.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
