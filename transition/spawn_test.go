package transition

import (
	"testing"

	"github.com/milk9111/backtrack/common"
)

func TestSpawnPositionHorizontal(t *testing.T) {
	// tall doorway: entered from the side
	src := common.Rect{X: 100, Y: 200, W: 20, H: 80}
	dst := common.Rect{X: 500, Y: 400, W: 20, H: 80}
	halfW, halfH := 10.0, 14.0

	t.Run("entered_from_right", func(t *testing.T) {
		// player center right of the doorway center
		x, y := SpawnPosition(src, dst, 115, 250, halfW, halfH)
		wantX := dst.Right() + SpawnGap + halfW // 520 + 2 + 10
		if x != wantX {
			t.Fatalf("expected x=%v, got %v", wantX, x)
		}
		wantY := dst.Bottom() + (250 - src.Bottom()) // 480 + (250-280)
		if y != wantY {
			t.Fatalf("expected y=%v, got %v", wantY, y)
		}
	})

	t.Run("entered_from_left", func(t *testing.T) {
		x, _ := SpawnPosition(src, dst, 105, 250, halfW, halfH)
		wantX := dst.X - SpawnGap - halfW // 500 - 2 - 10
		if x != wantX {
			t.Fatalf("expected x=%v, got %v", wantX, x)
		}
	})

	t.Run("vertical_offset_preserved", func(t *testing.T) {
		// feet near the source bottom stay near the destination bottom
		_, y := SpawnPosition(src, dst, 115, 270, halfW, halfH)
		if got, want := y, dst.Bottom()-10; got != want {
			t.Fatalf("expected y=%v, got %v", want, got)
		}
	})
}

func TestSpawnPositionVertical(t *testing.T) {
	// wide doorway: entered from above or below
	src := common.Rect{X: 100, Y: 200, W: 80, H: 20}
	halfW, halfH := 10.0, 14.0

	t.Run("entered_from_below", func(t *testing.T) {
		dst := common.Rect{X: 500, Y: 400, W: 80, H: 20}
		_, y := SpawnPosition(src, dst, 140, 215, halfW, halfH)
		wantY := dst.Bottom() + SpawnGap + halfH
		if y != wantY {
			t.Fatalf("expected y=%v, got %v", wantY, y)
		}
	})

	t.Run("entered_from_above", func(t *testing.T) {
		dst := common.Rect{X: 500, Y: 400, W: 80, H: 20}
		_, y := SpawnPosition(src, dst, 140, 205, halfW, halfH)
		wantY := dst.Y - SpawnGap - halfH
		if y != wantY {
			t.Fatalf("expected y=%v, got %v", wantY, y)
		}
	})

	t.Run("horizontal_offset_preserved", func(t *testing.T) {
		dst := common.Rect{X: 500, Y: 400, W: 80, H: 20}
		x, _ := SpawnPosition(src, dst, 140, 205, halfW, halfH)
		// offset 40 from the source's left edge carries over
		if x != dst.X+40 {
			t.Fatalf("expected x=%v, got %v", dst.X+40, x)
		}
	})

	t.Run("offset_clamped_to_narrow_destination", func(t *testing.T) {
		dst := common.Rect{X: 500, Y: 400, W: 40, H: 20}
		x, _ := SpawnPosition(src, dst, 175, 205, halfW, halfH)
		// raw offset 75 clamps to W - halfW - gap = 28
		if x != dst.X+28 {
			t.Fatalf("expected x=%v, got %v", dst.X+28, x)
		}
	})

	t.Run("degenerate_destination_centers", func(t *testing.T) {
		// destination too narrow for any valid offset interval
		dst := common.Rect{X: 500, Y: 400, W: 16, H: 20}
		x, _ := SpawnPosition(src, dst, 175, 205, halfW, halfH)
		if x != dst.X+dst.W/2 {
			t.Fatalf("expected centered x=%v, got %v", dst.X+dst.W/2, x)
		}
	})
}

func TestSpawnPositionAxisChoice(t *testing.T) {
	cases := []struct {
		name       string
		src        common.Rect
		horizontal bool
	}{
		{"taller_than_wide", common.Rect{W: 20, H: 80}, true},
		{"wider_than_tall", common.Rect{W: 80, H: 20}, false},
		{"square_is_vertical", common.Rect{W: 40, H: 40}, false},
	}

	dst := common.Rect{X: 500, Y: 400, W: 80, H: 80}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// entered from beyond both centers; the chosen axis shows in
			// which coordinate lands outside the destination rect
			x, y := SpawnPosition(c.src, dst, c.src.W, c.src.H, 10, 10)
			outsideX := x > dst.Right() || x < dst.X
			outsideY := y > dst.Bottom() || y < dst.Y
			if c.horizontal && !outsideX {
				t.Fatalf("expected horizontal placement, got x=%v y=%v", x, y)
			}
			if !c.horizontal && !outsideY {
				t.Fatalf("expected vertical placement, got x=%v y=%v", x, y)
			}
		})
	}
}
