package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// RenderWorkers возвращает количество фоновых воркеров рендеринга.
// Рендеринг оверлея нагружает CPU, поэтому берем число логических
// ядер, но не меньше одного.
func RenderWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// CacheCapacity подбирает емкость кэша отрендеренных оверлеев.
// Базовое значение — 8 записей (несколько быстрых ресайзов подряд);
// на машинах с запасом памяти поднимаем до 16.
func CacheCapacity() int {
	capacity := 8

	vm, err := mem.VirtualMemory()
	if err == nil && vm.Available > 2<<30 {
		capacity = 16
	}

	return capacity
}
