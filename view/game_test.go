package view

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestStopKeyPressed(t *testing.T) {
	cases := []struct {
		keys []ebiten.Key
		want bool
	}{
		{nil, false},
		{[]ebiten.Key{ebiten.KeyA}, false},
		{[]ebiten.Key{ebiten.KeySpace}, true},
		{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeySpace}, true},
	}
	for _, c := range cases {
		if got := stopKeyPressed(c.keys); got != c.want {
			t.Errorf("stopKeyPressed(%v) = %v, want %v", c.keys, got, c.want)
		}
	}
}
