//go:build !opencl

package clwave

import (
	"errors"
	"testing"
)

func TestNewUnavailable(t *testing.T) {
	s, err := New(8, 8, WithVerify())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("New() error = %v, want ErrUnavailable", err)
	}
	if s != nil {
		t.Error("New() returned a solver alongside the error")
	}
}
