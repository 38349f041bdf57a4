package system

import (
	"image"
	"sync"
)

// ImagePool предоставляет механизмы повторного использования image.RGBA
// (кадры) и image.Alpha (маски покрытия растеризатора) для снижения
// нагрузки на Garbage Collector (GC).
type ImagePool struct {
	rgba  map[string]*sync.Pool
	alpha map[string]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &ImagePool{
	rgba:  make(map[string]*sync.Pool),
	alpha: make(map[string]*sync.Pool),
}

// GetImage возвращает экземпляр *image.RGBA из пула или создает новый,
// если в пуле нет подходящего по размеру объекта.
func GetImage(rect image.Rectangle) *image.RGBA {
	return globalPool.GetImage(rect)
}

// PutImage возвращает экземпляр *image.RGBA в пул для повторного использования.
func PutImage(img *image.RGBA) {
	globalPool.PutImage(img)
}

// GetMask возвращает маску *image.Alpha из пула. Содержимое маски не
// обнуляется — это обязанность вызывающего.
func GetMask(rect image.Rectangle) *image.Alpha {
	return globalPool.GetMask(rect)
}

// PutMask возвращает маску в пул.
func PutMask(mask *image.Alpha) {
	globalPool.PutMask(mask)
}

func (p *ImagePool) GetImage(rect image.Rectangle) *image.RGBA {
	pool := p.lookup(p.rgba, rect.String(), func() interface{} {
		return image.NewRGBA(rect)
	})
	return pool.Get().(*image.RGBA)
}

func (p *ImagePool) PutImage(img *image.RGBA) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.rgba[img.Rect.String()]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}

func (p *ImagePool) GetMask(rect image.Rectangle) *image.Alpha {
	pool := p.lookup(p.alpha, rect.String(), func() interface{} {
		return image.NewAlpha(rect)
	})
	return pool.Get().(*image.Alpha)
}

func (p *ImagePool) PutMask(mask *image.Alpha) {
	if mask == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.alpha[mask.Rect.String()]
	p.mu.RUnlock()

	if exists {
		pool.Put(mask)
	}
}

func (p *ImagePool) lookup(pools map[string]*sync.Pool, key string, newFn func() interface{}) *sync.Pool {
	p.mu.RLock()
	pool, exists := pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = pools[key]
		if !exists {
			pool = &sync.Pool{New: newFn}
			pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool
}
