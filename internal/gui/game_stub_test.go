//go:build !ebiten

package gui

import (
	"errors"
	"testing"

	"github.com/san-kum/heatsim/internal/heat"
)

func TestRunWithoutTag(t *testing.T) {
	s, err := heat.New(heat.DefaultParams(), heat.SeederFunc(func(*heat.Field) {}))
	if err != nil {
		t.Fatal(err)
	}
	if err := Run(s, nil, Options{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
