package video

import (
	"path/filepath"
	"strings"

	"github.com/ivlev/prompt2video/internal/config"
	"github.com/ivlev/prompt2video/internal/system"
)

// ForOutput выбирает коллаборатора кодирования по расширению пути
// результата. mp4 требует ffmpeg; его отсутствие проявляется здесь,
// до отрисовки первого кадра.
func ForOutput(path string, cfg *config.Config) (Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return &GIFEncoder{}, nil
	case "":
		// Путь без расширения трактуем как директорию PNG-кадров.
		return &PNGSequenceEncoder{}, nil
	default:
		if !system.HasFFmpeg() {
			return nil, ErrEncoderUnavailable
		}
		codec := cfg.VideoEncoder
		if codec == "" {
			codec, _ = system.GetBestH264Encoder()
		}
		return &FFmpegEncoder{
			Codec:     codec,
			Quality:   cfg.Quality,
			AudioPath: cfg.AudioPath,
		}, nil
	}
}
