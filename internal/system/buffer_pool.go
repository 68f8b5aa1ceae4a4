package system

import (
	"image"
	"sync"
)

// BufferPool предоставляет механизмы повторного использования image.RGBA
// для снижения нагрузки на Garbage Collector (GC). Пул принадлежит
// создавшему его компоненту и передается явно — глобального пула нет.
type BufferPool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pools: make(map[string]*sync.Pool),
	}
}

// Get возвращает экземпляр *image.RGBA из пула или создает новый,
// если в пуле нет подходящего по размеру объекта. Содержимое буфера
// не обнуляется — это обязанность вызывающей стороны.
func (p *BufferPool) Get(rect image.Rectangle) *image.RGBA {
	key := rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

// Put возвращает экземпляр *image.RGBA в пул для повторного использования.
func (p *BufferPool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
