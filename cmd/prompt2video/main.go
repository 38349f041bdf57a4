package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/prompt2video/internal/config"
	"github.com/ivlev/prompt2video/internal/engine"
	"github.com/ivlev/prompt2video/internal/noise"
	"github.com/ivlev/prompt2video/internal/overlay"
	"github.com/ivlev/prompt2video/internal/prng"
	"github.com/ivlev/prompt2video/internal/render"
	"github.com/ivlev/prompt2video/internal/style"
	"github.com/ivlev/prompt2video/internal/system"
	"github.com/ivlev/prompt2video/internal/video"
)

const buildVersion = "1.0"

var (
	outputPath   string
	widthFlag    int
	heightFlag   int
	fpsFlag      int
	durationFlag int
	presetFlag   string
	formatFlag   string
	encoderFlag  string
	qualityFlag  int
	noiseFlag    string
	styleInPath  string
	styleOutPath string
	audioPath    string
	stampQR      bool
	showStats    bool
	configFile   string
	frameAtMs    float64
	framePath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prompt2video",
		Short: "процедурная генерация видео из текстового промпта",
	}

	generateCmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: "сгенерировать видео по промпту",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "путь результата (.mp4, .gif или директория PNG; по умолчанию output/<промпт>_<время>.mp4)")
	generateCmd.Flags().IntVar(&widthFlag, "width", config.DefaultWidth, "ширина кадра")
	generateCmd.Flags().IntVar(&heightFlag, "height", config.DefaultHeight, "высота кадра")
	generateCmd.Flags().IntVar(&fpsFlag, "fps", config.DefaultFPS, "логическая частота кадров")
	generateCmd.Flags().IntVar(&durationFlag, "duration", config.DefaultDurationMs, "длительность, мс")
	generateCmd.Flags().StringVar(&presetFlag, "preset", "", "пресет формата: 16:9, 9:16, 4:5")
	generateCmd.Flags().StringVar(&formatFlag, "format", "", "контейнер по умолчанию: mp4, gif, png")
	generateCmd.Flags().StringVar(&encoderFlag, "encoder", "", "видеоэнкодер (по умолчанию: лучший доступный h264)")
	generateCmd.Flags().IntVar(&qualityFlag, "quality", 0, "качество видео (0 - авто, x264: CRF, VideoToolbox: битрейт = Q*100кбит/с)")
	generateCmd.Flags().StringVar(&noiseFlag, "noise", "simplex", "вариант поля шума: simplex, perlin")
	generateCmd.Flags().StringVar(&styleInPath, "style-in", "", "взять дескриптор стиля из YAML вместо промпта")
	generateCmd.Flags().StringVar(&styleOutPath, "style-out", "", "сохранить производный дескриптор стиля в YAML")
	generateCmd.Flags().StringVar(&audioPath, "audio", "", "путь к звуковой дорожке (только mp4)")
	generateCmd.Flags().BoolVar(&stampQR, "qr", false, "QR-код с промптом на финальной стадии")
	generateCmd.Flags().BoolVar(&showStats, "stats", false, "отчёт о производительности")
	generateCmd.Flags().StringVar(&configFile, "config", "", "файл конфигурации YAML")

	describeCmd := &cobra.Command{
		Use:   "describe [prompt...]",
		Short: "вывести производный дескриптор стиля",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDescribe,
	}

	frameCmd := &cobra.Command{
		Use:   "frame [prompt...]",
		Short: "отрисовать один кадр в PNG",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFrame,
	}
	frameCmd.Flags().Float64Var(&frameAtMs, "at", 0, "момент времени кадра, мс")
	frameCmd.Flags().StringVarP(&framePath, "output", "o", "frame.png", "путь PNG-кадра")
	frameCmd.Flags().IntVar(&widthFlag, "width", config.DefaultWidth, "ширина кадра")
	frameCmd.Flags().IntVar(&heightFlag, "height", config.DefaultHeight, "высота кадра")
	frameCmd.Flags().StringVar(&noiseFlag, "noise", "simplex", "вариант поля шума")

	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "показать таблицу ключевых слов и палитр",
		Run:   runPalettes,
	}

	encodersCmd := &cobra.Command{
		Use:   "encoders",
		Short: "проверить доступные энкодеры",
		Run:   runEncoders,
	}

	rootCmd.AddCommand(generateCmd, describeCmd, frameCmd, palettesCmd, encodersCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func promptFromArgs(args []string) (string, error) {
	prompt := strings.Join(args, " ")
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("пустой промпт: опишите сцену хотя бы одним словом")
	}
	return prompt, nil
}

func buildConfig(cmd *cobra.Command, prompt string) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		fmt.Printf("[*] Конфигурация: %s\n", configFile)
	}

	// Флаги имеют приоритет над файлом, но только заданные явно.
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = widthFlag
	}
	if flags.Changed("height") {
		cfg.Height = heightFlag
	}
	if flags.Changed("fps") {
		cfg.FPS = fpsFlag
	}
	if flags.Changed("duration") {
		cfg.DurationMs = durationFlag
	}
	if flags.Changed("noise") {
		cfg.NoiseVariant = noiseFlag
	}
	if flags.Changed("encoder") {
		cfg.VideoEncoder = encoderFlag
	}
	if flags.Changed("quality") {
		cfg.Quality = qualityFlag
	}
	if flags.Changed("audio") {
		cfg.AudioPath = audioPath
	}
	if flags.Changed("qr") {
		cfg.StampQR = stampQR
	}
	if flags.Changed("stats") {
		cfg.ShowStats = showStats
	}

	cfg.Prompt = prompt
	cfg.BuildVersion = buildVersion

	if presetFlag != "" {
		if err := cfg.ApplyPreset(presetFlag); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

func resolveOutput(prompt string) string {
	if outputPath != "" {
		return outputPath
	}
	path := engine.DefaultOutputPath(prompt)
	switch formatFlag {
	case "gif":
		path = strings.TrimSuffix(path, ".mp4") + ".gif"
	case "png":
		path = strings.TrimSuffix(path, ".mp4")
	}
	return path
}

func runGenerate(cmd *cobra.Command, args []string) error {
	system.InitResourceLimits()

	prompt, err := promptFromArgs(args)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, prompt)
	if err != nil {
		return err
	}
	cfg.OutputVideo = resolveOutput(prompt)
	os.MkdirAll(filepath.Dir(cfg.OutputVideo), 0755)

	// Дескриптор стиля: из промпта либо из готового YAML.
	var descriptor style.Descriptor
	if styleInPath != "" {
		loaded, err := style.Read(styleInPath)
		if err != nil {
			return fmt.Errorf("ошибка чтения стиля: %w", err)
		}
		descriptor = *loaded
		fmt.Printf("[*] Используется стиль: %s\n", styleInPath)
	} else {
		descriptor = style.Extract(prompt)
	}
	if styleOutPath != "" {
		if err := style.Write(&descriptor, styleOutPath); err != nil {
			return fmt.Errorf("ошибка сохранения стиля: %w", err)
		}
		fmt.Printf("[+] Стиль сохранен: %s\n", styleOutPath)
	}

	hash := prng.Hash(style.Normalize(prompt))
	field, err := noise.New(cfg.NoiseVariant, noise.Seed(hash))
	if err != nil {
		return err
	}

	encoder, err := video.ForOutput(cfg.OutputVideo, cfg)
	if err != nil {
		return err
	}

	if cfg.AudioPath != "" {
		if dur, err := system.GetAudioDuration(cfg.AudioPath); err == nil {
			fmt.Printf("[*] Аудио: %s (%.1fs)\n", cfg.AudioPath, dur)
		} else {
			log.Printf("[!] Не удалось получить длительность аудио: %v", err)
		}
	}

	var stamp image.Image
	if cfg.StampQR {
		stamp, err = overlay.QR(prompt, overlay.StampSize)
		if err != nil {
			return fmt.Errorf("ошибка генерации QR: %w", err)
		}
	}

	fmt.Println("--- [PROJECT: PROMPT ENGINE] ---")
	fmt.Printf("[*] Промпт: %q | Стиль: %s/%s\n", prompt, descriptor.Motion, descriptor.Mood)
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Длительность: %dms | Кадров: %d\n",
		cfg.Width, cfg.Height, cfg.FPS, cfg.DurationMs, cfg.TotalFrames())
	fmt.Println("--------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	project := &engine.Project{
		Config:  cfg,
		Style:   descriptor,
		Field:   field,
		Encoder: encoder,
		Stamp:   stamp,
	}

	var conductor engine.Conductor
	report, err := conductor.Start(ctx, project).Wait()
	if err != nil {
		return fmt.Errorf("ошибка проекта: %w", err)
	}
	if report.Cancelled {
		fmt.Printf("[!] Прогон отменен; частичный результат: %s (%d кадров)\n", cfg.OutputVideo, report.FramesDrawn)
		return nil
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
	return nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	prompt, err := promptFromArgs(args)
	if err != nil {
		return err
	}

	d := style.Extract(prompt)
	data, err := yaml.Marshal(&d)
	if err != nil {
		return err
	}
	fmt.Printf("# prompt: %q (hash %#x)\n", prompt, prng.Hash(style.Normalize(prompt)))
	fmt.Print(string(data))
	return nil
}

func runFrame(cmd *cobra.Command, args []string) error {
	prompt, err := promptFromArgs(args)
	if err != nil {
		return err
	}

	d := style.Extract(prompt)
	hash := prng.Hash(style.Normalize(prompt))
	field, err := noise.New(noiseFlag, noise.Seed(hash))
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, widthFlag, heightFlag))
	progress := frameAtMs / float64(config.DefaultDurationMs)
	if progress > 1 {
		progress = 1
	}
	// Один кадр без зерна: побайтово воспроизводимый снимок для отладки.
	render.Render(img, field, d, frameAtMs, progress, nil)

	f, err := os.Create(framePath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}

	fmt.Printf("[+] Кадр t=%.0fms сохранен: %s\n", frameAtMs, framePath)
	return nil
}

func runPalettes(cmd *cobra.Command, args []string) {
	fmt.Println("Таблица ключевых слов (порядок = приоритет палитры):")
	for _, kw := range style.Keywords() {
		e, _ := style.Lookup(kw)
		fmt.Printf("  %-8s %v\n", kw, e.Palette)
	}
}

func runEncoders(cmd *cobra.Command, args []string) {
	if !system.HasFFmpeg() {
		fmt.Println("[!] ffmpeg не найден: доступны только GIF и PNG-последовательности")
		return
	}
	name, _ := system.GetBestH264Encoder()
	fmt.Printf("[*] ffmpeg найден. Лучший h264-энкодер: %s\n", name)
	if name != "libx264" {
		fmt.Println("[*] Обнаружено аппаратное ускорение")
	}
}
