package system

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// HasFFmpeg сообщает, доступен ли ffmpeg в PATH. Проверяется до
// первого кадра: без ffmpeg mp4-вывод невозможен.
func HasFFmpeg() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

func GetAudioDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, err
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration)
	if err != nil {
		return 0, err
	}

	return duration, nil
}

func GetBestH264Encoder() (string, string) {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Intel/Linux (VAAPI - требует доп. настройки, пока пропустим или добавим позже)
	// 4. Software (libx264)

	encoders := []struct {
		name string
		args string
	}{
		{"h264_videotoolbox", ""},
		{"h264_nvenc", ""},
	}

	for _, enc := range encoders {
		cmd := exec.Command("ffmpeg", "-encoders")
		out, err := cmd.CombinedOutput()
		if err == nil && strings.Contains(string(out), enc.name) {
			return enc.name, enc.args
		}
	}

	return "libx264", ""
}

// Границы очереди кадров между рендером и энкодером.
const (
	minQueueDepth = 2
	maxQueueDepth = 16
)

// FrameQueueDepth подбирает глубину очереди кадров по ресурсам хоста:
// не больше двух кадров на логическое ядро и не больше четверти
// доступной памяти. При ошибках опроса возвращается безопасное
// значение по умолчанию.
func FrameQueueDepth(width, height int) int {
	depth := runtime.NumCPU() * 2
	if counts, err := cpu.Counts(true); err == nil && counts > 0 {
		depth = counts * 2
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		frameBytes := uint64(width) * uint64(height) * 4
		if frameBytes > 0 {
			byBudget := vm.Available / 4 / frameBytes
			if byBudget < uint64(depth) {
				depth = int(byBudget)
			}
		}
	}

	if depth < minQueueDepth {
		depth = minQueueDepth
	}
	if depth > maxQueueDepth {
		depth = maxQueueDepth
	}
	return depth
}
