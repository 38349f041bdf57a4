package engine

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/prompt2video/internal/config"
	"github.com/ivlev/prompt2video/internal/noise"
	"github.com/ivlev/prompt2video/internal/overlay"
	"github.com/ivlev/prompt2video/internal/render"
	"github.com/ivlev/prompt2video/internal/style"
	"github.com/ivlev/prompt2video/internal/system"
	"github.com/ivlev/prompt2video/internal/video"
)

// Project — один прогон генерации: конфигурация, дескриптор стиля,
// поле шума и коллаборатор кодирования. Дескриптор и поле создаются до
// запуска и только читаются во время прогона, поэтому блокировки не
// нужны.
type Project struct {
	Config  *config.Config
	Style   style.Descriptor
	Field   noise.Field
	Encoder video.Encoder

	// Stamp — опциональный QR-финал (кадр в кадре) на последней стадии.
	Stamp image.Image

	// Grain — источник косметического шума зерна. Если nil, создается
	// несидированный источник: мерцание зерна — единственный намеренно
	// недетерминированный элемент кадра.
	Grain *rand.Rand
}

// Report — итоги прогона для отчёта о производительности.
type Report struct {
	FramesDrawn  int
	TotalTime    time.Duration
	RenderTime   time.Duration
	EncodeTime   time.Duration
	EffectiveFPS float64
	Cancelled    bool
}

// Run прогоняет рендер по всем логическим кадрам и передаёт их
// энкодеру через ограниченную очередь. Кадры рисуются строго
// последовательно (контракт драйвера); параллелен только сброс в
// энкодер. Любая паника внутри прогона гасится на этой границе и
// превращается в ошибку — прогон никогда не остаётся «в процессе».
func (p *Project) Run(ctx context.Context) (rep *Report, err error) {
	var (
		frames       chan *image.RGBA
		framesClosed bool
		g            *errgroup.Group
		begun        bool
	)
	defer func() {
		if r := recover(); r != nil {
			// Паника внутри прогона: дочистить пайплайн, чтобы
			// горутина энкодера не осталась висеть на канале, и
			// финализировать то, что уже успело записаться.
			if frames != nil && !framesClosed {
				framesClosed = true
				close(frames)
				func() {
					defer func() { recover() }()
					g.Wait()
				}()
			}
			if begun {
				p.Encoder.Finalize()
			}
			rep = nil
			err = fmt.Errorf("сбой во время генерации: %v", r)
		}
	}()

	cfg := p.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	spec := video.FrameSpec{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Output: cfg.OutputVideo,
	}
	if err := p.Encoder.Begin(ctx, spec); err != nil {
		return nil, fmt.Errorf("ошибка запуска энкодера: %w", err)
	}
	begun = true

	totalFrames := cfg.TotalFrames()
	totalMs := float64(cfg.DurationMs)
	rect := image.Rect(0, 0, cfg.Width, cfg.Height)

	grain := p.Grain
	if grain == nil {
		grain = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	queueDepth := system.FrameQueueDepth(cfg.Width, cfg.Height)
	frames = make(chan *image.RGBA, queueDepth)

	var encodeTime time.Duration
	var gctx context.Context
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		for img := range frames {
			t0 := time.Now()
			werr := p.Encoder.WriteFrame(img)
			encodeTime += time.Since(t0)
			system.PutImage(img)
			if werr != nil {
				return werr
			}
		}
		return nil
	})

	fmt.Printf("[*] %s\n", StageLabel(-1))

	var renderTime time.Duration
	drawn := 0
	lastLabel := StageLabel(-1)

loop:
	for i := 0; i < totalFrames; i++ {
		select {
		case <-gctx.Done():
			break loop
		default:
		}

		elapsedMs := float64(i) * 1000 / float64(cfg.FPS)
		progress := elapsedMs / totalMs
		if progress > 1 {
			progress = 1
		}

		if label := StageLabel(progress); label != lastLabel {
			fmt.Printf("[>] %s (%d/%d)\n", label, i+1, totalFrames)
			lastLabel = label
		}

		img := system.GetImage(rect)
		t0 := time.Now()
		render.Render(img, p.Field, p.Style, elapsedMs, progress, grain)
		if p.Stamp != nil {
			overlay.Stamp(img, p.Stamp, progress)
		}
		renderTime += time.Since(t0)

		select {
		case frames <- img:
			drawn++
		case <-gctx.Done():
			system.PutImage(img)
			break loop
		}
	}

	framesClosed = true
	close(frames)
	encErr := g.Wait()

	// Финализация идёт всегда: при отмене энкодер собирает контейнер
	// из уже записанных кадров — частичный результат это не ошибка.
	finErr := p.Encoder.Finalize()

	cancelled := ctx.Err() != nil
	if encErr != nil && !cancelled {
		return nil, fmt.Errorf("ошибка кодирования: %w", encErr)
	}
	if finErr != nil && !cancelled {
		return nil, fmt.Errorf("ошибка финализации: %w", finErr)
	}

	totalTime := time.Since(startTime)
	rep = &Report{
		FramesDrawn:  drawn,
		TotalTime:    totalTime,
		RenderTime:   renderTime,
		EncodeTime:   encodeTime,
		EffectiveFPS: float64(drawn) / totalTime.Seconds(),
		Cancelled:    cancelled,
	}

	if cfg.ShowStats {
		p.printStats(rep)
	}
	return rep, nil
}

func (p *Project) printStats(rep *Report) {
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, rep.TotalTime.Seconds(), rep.RenderTime.Seconds(),
		rep.EncodeTime.Seconds(), rep.FramesDrawn, rep.EffectiveFPS,
	)
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Prompt: %q | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Config.Prompt,
		rep.FramesDrawn,
		rep.TotalTime.Seconds(),
		rep.RenderTime.Seconds(),
		rep.EncodeTime.Seconds(),
		rep.EffectiveFPS,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}

// DefaultOutputPath строит имя результата из промпта и момента
// запуска: output/<слаг>_<метка времени>.mp4.
func DefaultOutputPath(prompt string) string {
	slug := make([]rune, 0, 24)
	for _, r := range prompt {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			slug = append(slug, r)
		case r == ' ' || r == '_' || r == '-':
			slug = append(slug, '_')
		}
		if len(slug) >= 24 {
			break
		}
	}
	if len(slug) == 0 {
		slug = []rune("video")
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("output", fmt.Sprintf("%s_%s.mp4", string(slug), timestamp))
}
