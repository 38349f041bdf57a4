package video

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSequenceEncoder пишет кадры отдельными PNG-файлами в директорию.
// Полезно для отладки рендера и для внешних пайплайнов сборки.
type PNGSequenceEncoder struct {
	dir   string
	index int
}

func (e *PNGSequenceEncoder) Begin(ctx context.Context, spec FrameSpec) error {
	if err := os.MkdirAll(spec.Output, 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", spec.Output, err)
	}
	e.dir = spec.Output
	e.index = 0
	return nil
}

func (e *PNGSequenceEncoder) WriteFrame(img *image.RGBA) error {
	path := filepath.Join(e.dir, fmt.Sprintf("frame_%05d.png", e.index))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("ошибка записи кадра %d: %w", e.index, err)
	}
	e.index++
	return nil
}

func (e *PNGSequenceEncoder) Finalize() error {
	if e.index == 0 {
		return fmt.Errorf("нет кадров в последовательности")
	}
	return nil
}
