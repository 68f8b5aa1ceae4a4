package engine

import (
	"fmt"
	"image"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/camoverlay/internal/cache"
	"github.com/ivlev/camoverlay/internal/compositor"
	"github.com/ivlev/camoverlay/internal/preset"
	"github.com/ivlev/camoverlay/internal/render"
	"github.com/ivlev/camoverlay/internal/system"
)

// Engine связывает источник пресетов, кэш рендеринга и композитор.
// Два контекста исполнения: контекст доставки кадров (GetCompositedFrame,
// никогда не блокируется на рендеринге) и контекст рендеринга (фоновые
// воркеры, канал jobs). Кэш — граница синхронизации между ними.
type Engine struct {
	cache *cache.Cache

	mu        sync.RWMutex
	active    preset.Props
	hasActive bool
	failed    map[cache.Key]bool

	jobs      chan preset.Props
	done      chan struct{}
	workers   *errgroup.Group
	closeOnce sync.Once
	closeErr  error

	startTime time.Time

	framesTotal atomic.Int64
	blended     atomic.Int64
	passthrough atomic.Int64
	renderErrs  atomic.Int64
}

// Options настраивают движок; нулевые значения берутся из system.
type Options struct {
	Workers       int
	CacheCapacity int
	Pool          *system.BufferPool
}

func New(opts Options) (*Engine, error) {
	pool := opts.Pool
	if pool == nil {
		pool = system.NewBufferPool()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = system.RenderWorkers()
	}

	capacity := opts.CacheCapacity
	if capacity <= 0 {
		capacity = system.CacheCapacity()
	}

	c, err := cache.New(render.New(pool), capacity)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cache:     c,
		failed:    make(map[cache.Key]bool),
		jobs:      make(chan preset.Props, 16),
		done:      make(chan struct{}),
		workers:   &errgroup.Group{},
		startTime: time.Now(),
	}

	// Пул воркеров рендеринга (CPU bound). Схлопывание одинаковых
	// ключей происходит в кэше, поэтому воркеры просто тянут задачи.
	for w := 0; w < workers; w++ {
		e.workers.Go(e.renderLoop)
	}

	return e, nil
}

func (e *Engine) renderLoop() error {
	for {
		select {
		case <-e.done:
			return nil
		case p := <-e.jobs:
			if _, err := e.cache.Get(p); err != nil {
				e.renderErrs.Add(1)
				// Ключ помечается как сбойный: горячий путь не ставит
				// его в очередь повторно, пока ключ не сменится.
				e.mu.Lock()
				e.failed[cache.KeyOf(p)] = true
				e.mu.Unlock()
				log.Printf("[!] Ошибка рендеринга оверлея %q: %v", p.PresetID, err)
			}
		}
	}
}

// SetProps переключает активный пресет. Записи чужих пресетов
// вычищаются из кэша, рендеринг нового состояния запускается в фоне.
// До готовности нового буфера кадры идут со старым оверлеем или без
// оверлея — переключение согласуется со временем, а не по кадру.
func (e *Engine) SetProps(p preset.Props) error {
	if err := preset.ValidateProps(p); err != nil {
		return err
	}

	e.mu.Lock()
	e.active = p
	e.hasActive = true
	// Явная смена состояния — новый запрос: сбойные ключи снова
	// получают ровно одну попытку рендеринга.
	e.failed = make(map[cache.Key]bool)
	e.mu.Unlock()

	e.cache.RetainPreset(p.PresetID)
	e.schedule(p)
	return nil
}

// ClearProps снимает оверлей: кадры проходят без изменений.
func (e *Engine) ClearProps() {
	e.mu.Lock()
	e.hasActive = false
	e.failed = make(map[cache.Key]bool)
	e.mu.Unlock()
}

// schedule ставит задачу рендеринга без блокировки. Если очередь
// полна, задачу поставит следующий кадр с тем же промахом. Ключ,
// рендеринг которого уже провалился, повторно не ставится: иначе
// каждый промах кадра превращался бы в новую провальную попытку.
func (e *Engine) schedule(p preset.Props) {
	e.mu.RLock()
	skip := e.failed[cache.KeyOf(p)]
	e.mu.RUnlock()
	if skip {
		return
	}
	select {
	case <-e.done:
	case e.jobs <- p:
	default:
	}
}

// GetCompositedFrame — горячий путь. Геометрия берется из самого
// кадра, поэтому смена разрешения камеры автоматически дает новый
// ключ кэша. Промах кэша или любая ошибка деградируют до "кадр без
// оверлея"; этот вызов никогда не ждет рендеринга.
func (e *Engine) GetCompositedFrame(frame *image.RGBA) *image.RGBA {
	e.framesTotal.Add(1)

	if frame == nil {
		return frame
	}

	e.mu.RLock()
	p := e.active
	ok := e.hasActive
	e.mu.RUnlock()
	if !ok {
		e.passthrough.Add(1)
		return frame
	}

	b := frame.Bounds()
	p.Width, p.Height = b.Dx(), b.Dy()
	if p.Width <= 0 || p.Height <= 0 {
		e.passthrough.Add(1)
		return frame
	}

	buf := e.cache.Peek(p)
	if buf == nil {
		e.schedule(p)
		e.passthrough.Add(1)
		return frame
	}

	if err := compositor.Composite(frame, buf); err != nil {
		log.Printf("[!] Композитинг пропущен: %v", err)
		e.passthrough.Add(1)
		return frame
	}

	e.blended.Add(1)
	return frame
}

// RenderPreview — синхронный рендер для инструментов авторинга.
// Работает вне контекста доставки кадров, но через общий кэш, так что
// повторный предпросмотр того же состояния бесплатен.
func (e *Engine) RenderPreview(p preset.Props) (*image.RGBA, error) {
	if err := preset.ValidateProps(p); err != nil {
		return nil, err
	}
	return e.cache.Get(p)
}

// Cache открывает счетчики кэша для тестов и отчета.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// Close останавливает воркеры рендеринга. Канал jobs не закрывается:
// кадры могут приходить и после остановки, они просто проходят без
// оверлея, а их задачи никто не забирает.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)
		e.closeErr = e.workers.Wait()
	})
	return e.closeErr
}

// Report возвращает сводку работы движка.
func (e *Engine) Report() string {
	uptime := time.Since(e.startTime)
	frames := e.framesTotal.Load()
	fps := 0.0
	if uptime.Seconds() > 0 {
		fps = float64(frames) / uptime.Seconds()
	}
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Uptime: %.2fs\n"+
			"Frames: %d (%.2f fps)\n"+
			"Blended: %d | Passthrough: %d\n"+
			"Renders: %d | Cache hits: %d | misses: %d\n"+
			"Render errors: %d\n"+
			"----------------------------\n",
		uptime.Seconds(), frames, fps,
		e.blended.Load(), e.passthrough.Load(),
		e.cache.Renders(), e.cache.Hits(), e.cache.Misses(),
		e.renderErrs.Load(),
	)
}
