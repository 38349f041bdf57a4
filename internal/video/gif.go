package video

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// GIFEncoder собирает анимированный GIF целиком в памяти и пишет его
// на Finalize. Запасной вариант, когда ffmpeg недоступен: качество
// ниже (палитра Plan9), зато без внешних процессов.
type GIFEncoder struct {
	spec   FrameSpec
	frames []*image.Paletted
	delays []int
}

func (e *GIFEncoder) Begin(ctx context.Context, spec FrameSpec) error {
	if spec.FPS <= 0 {
		return fmt.Errorf("некорректный FPS для GIF: %d", spec.FPS)
	}
	e.spec = spec
	e.frames = e.frames[:0]
	e.delays = e.delays[:0]
	return nil
}

func (e *GIFEncoder) WriteFrame(img *image.RGBA) error {
	pal := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(pal, img.Bounds(), img, image.Point{})
	e.frames = append(e.frames, pal)
	// Задержка GIF измеряется в сотых долях секунды.
	e.delays = append(e.delays, 100/e.spec.FPS)
	return nil
}

func (e *GIFEncoder) Finalize() error {
	if len(e.frames) == 0 {
		return fmt.Errorf("нет кадров для GIF")
	}

	f, err := os.Create(e.spec.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	out := &gif.GIF{
		Image: e.frames,
		Delay: e.delays,
	}
	if err := gif.EncodeAll(f, out); err != nil {
		return fmt.Errorf("ошибка кодирования GIF: %w", err)
	}
	return nil
}
