package lifecycle

import (
	"errors"
	"testing"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

type light string

const (
	red    light = "red"
	green  light = "green"
	yellow light = "yellow"
	off    light = "off"
)

var lights = NewTable("light", map[light][]light{
	red:    {green},
	green:  {yellow},
	yellow: {red},
	off:    nil,
})

func TestCheck(t *testing.T) {
	cases := []struct {
		name    string
		from    light
		to      light
		enforce bool
		want    error
	}{
		{"allowed", red, green, true, nil},
		{"same state", off, off, true, nil},
		{"disallowed", red, yellow, true, apperr.ErrConflict},
		{"terminal", off, red, true, apperr.ErrConflict},
		{"unknown target", red, light("blue"), true, apperr.ErrInvalidInput},
		{"not enforced", off, red, false, nil},
		{"unknown not enforced", red, light("blue"), false, apperr.ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := lights.Check(tc.from, tc.to, tc.enforce)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if s, err := lights.Parse("green"); err != nil || s != green {
		t.Fatalf("unexpected %q %v", s, err)
	}
	if _, err := lights.Parse("purple"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
