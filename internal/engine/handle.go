package engine

import (
	"context"
	"sync"
)

// RunHandle — владелец жизненного цикла одного прогона. Остановка это
// метод на хэндле, а не свободная функция над разделяемым состоянием.
type RunHandle struct {
	cancel context.CancelFunc
	done   chan struct{}

	report *Report
	err    error
}

// Stop сигнализирует драйверу прекратить планирование кадров.
// Возвращается сразу; завершение ждут через Wait.
func (h *RunHandle) Stop() {
	h.cancel()
}

// Wait блокируется до конца прогона и возвращает его итог.
func (h *RunHandle) Wait() (*Report, error) {
	<-h.done
	return h.report, h.err
}

// Conductor гарантирует не более одного активного прогона: новый
// запуск полностью останавливает предыдущий (включая финализацию его
// энкодера) до отрисовки своего первого кадра.
type Conductor struct {
	mu      sync.Mutex
	current *RunHandle
}

// Start запускает проект в фоне и возвращает его хэндл.
func (c *Conductor) Start(ctx context.Context, p *Project) *RunHandle {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.current.Stop()
		c.current.Wait()
	}

	runCtx, cancel := context.WithCancel(ctx)
	h := &RunHandle{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		h.report, h.err = p.Run(runCtx)
	}()

	c.current = h
	return h
}
