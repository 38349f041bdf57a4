package system

import (
	"image"
	"testing"
)

func TestFrameQueueDepthBounds(t *testing.T) {
	cases := []struct{ w, h int }{
		{896, 504},
		{504, 896},
		{1, 1},
		{8192, 8192},
	}
	for _, c := range cases {
		depth := FrameQueueDepth(c.w, c.h)
		if depth < minQueueDepth || depth > maxQueueDepth {
			t.Errorf("FrameQueueDepth(%d,%d) = %d out of [%d,%d]", c.w, c.h, depth, minQueueDepth, maxQueueDepth)
		}
	}
}

func TestImagePoolReuse(t *testing.T) {
	rect := image.Rect(0, 0, 64, 32)

	img := GetImage(rect)
	if img.Rect != rect {
		t.Fatalf("Expected rect %v, got %v", rect, img.Rect)
	}
	img.Pix[0] = 0xAA
	PutImage(img)

	again := GetImage(rect)
	if again.Rect != rect {
		t.Errorf("Expected rect %v after reuse, got %v", rect, again.Rect)
	}
}

func TestMaskPoolSeparateFromImages(t *testing.T) {
	rect := image.Rect(0, 0, 16, 16)

	mask := GetMask(rect)
	if mask.Rect != rect {
		t.Fatalf("Expected rect %v, got %v", rect, mask.Rect)
	}
	PutMask(mask)

	// nil возвраты игнорируются
	PutImage(nil)
	PutMask(nil)
}
