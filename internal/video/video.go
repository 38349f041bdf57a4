package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
)

// ErrEncoderUnavailable возвращается, когда выбранный контейнер
// требует ffmpeg, а его нет в системе. Ошибка поднимается до отрисовки
// первого кадра.
var ErrEncoderUnavailable = errors.New("ffmpeg не найден: mp4-вывод недоступен")

// FrameSpec описывает геометрию потока кадров и путь результата.
type FrameSpec struct {
	Width  int
	Height int
	FPS    int
	Output string
}

// Encoder принимает живую последовательность кадров и инкрементально
// собирает итоговый медиа-файл. Кадры приходят строго по одному и по
// порядку; Finalize обязан собрать валидный файл из того, что уже
// записано — частичный результат при отмене это норма, а не ошибка.
type Encoder interface {
	Begin(ctx context.Context, spec FrameSpec) error
	WriteFrame(img *image.RGBA) error
	Finalize() error
}

// FFmpegEncoder стримит сырые RGBA-кадры в stdin процесса ffmpeg.
// Диск не участвует до финального контейнера.
type FFmpegEncoder struct {
	Codec     string // h264_videotoolbox | h264_nvenc | libx264
	Quality   int    // 0 = авто по кодеку
	AudioPath string // опциональная звуковая дорожка

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	logBuf bytes.Buffer
}

// Begin запускает процесс ffmpeg. Контекст намеренно не привязан к
// процессу: отмена прогона приходит через Finalize (закрытие stdin),
// чтобы ffmpeg успел корректно дописать частичный контейнер.
func (e *FFmpegEncoder) Begin(ctx context.Context, spec FrameSpec) error {
	args := e.buildArgs(spec)

	e.cmd = exec.Command("ffmpeg", args...)
	e.cmd.Stdout = &e.logBuf
	e.cmd.Stderr = &e.logBuf

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}
	return nil
}

func (e *FFmpegEncoder) buildArgs(spec FrameSpec) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-framerate", fmt.Sprintf("%d", spec.FPS),
		"-i", "-",
	}

	if e.AudioPath != "" {
		args = append(args, "-i", e.AudioPath)
	}

	codec := e.Codec
	if codec == "" {
		codec = "libx264"
	}
	args = append(args, "-pix_fmt", "yuv420p", "-c:v", codec)

	// Качество в зависимости от энкодера
	quality := e.Quality
	switch codec {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую на всех версиях. Используем битрейт.
		if quality == 0 {
			quality = 75
		}
		args = append(args, "-b:v", fmt.Sprintf("%dk", quality*100))
	case "h264_nvenc":
		if quality == 0 {
			quality = 28
		}
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		if quality == 0 {
			quality = 23
		}
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	if e.AudioPath != "" {
		args = append(args, "-c:a", "aac", "-shortest")
	}

	args = append(args, spec.Output)
	return args
}

func (e *FFmpegEncoder) WriteFrame(img *image.RGBA) error {
	if e.stdin == nil {
		return fmt.Errorf("энкодер не запущен")
	}
	if err := writeRawRGBA(e.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

// Finalize закрывает stdin и дожидается ffmpeg. Закрытие потока после
// части кадров корректно финализирует частичный результат — на этом
// строится отмена прогона.
func (e *FFmpegEncoder) Finalize() error {
	if e.cmd == nil {
		return nil
	}
	if e.stdin != nil {
		e.stdin.Close()
		e.stdin = nil
	}
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %v\nLog: %s", err, e.logBuf.String())
	}
	return nil
}

// writeRawRGBA пишет пиксели кадра как есть. Кадры рендера всегда
// идут с нулевым началом координат и плотным stride; всё прочее --
// ошибка вызывающего.
func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min.X != 0 || bounds.Min.Y != 0 {
		return fmt.Errorf("кадр с нестандартным stride/началом: %v stride=%d", bounds, img.Stride)
	}
	_, err := w.Write(img.Pix)
	return err
}
