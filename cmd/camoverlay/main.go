package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/camoverlay/internal/config"
	"github.com/ivlev/camoverlay/internal/engine"
	"github.com/ivlev/camoverlay/internal/preset"
	"github.com/ivlev/camoverlay/internal/source"
	"github.com/ivlev/camoverlay/internal/system"
	"github.com/ivlev/camoverlay/internal/theme"
)

func main() {
	// Создаем нужные директории, если их нет
	dirs := []string{"presets", "input", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	presetsPtr := flag.String("presets", "", "Путь к YAML-таблице пресетов (по умолчанию: самый свежий файл в presets/, иначе встроенная таблица)")
	presetPtr := flag.String("preset", "", "ID пресета (по умолчанию: первый в таблице)")
	themePtr := flag.String("theme", "", "Переопределение темы: professional, creative, minimal, bold")
	titlePtr := flag.String("title", "", "Переопределение заголовка")
	subtitlePtr := flag.String("subtitle", "", "Переопределение подзаголовка")
	widthPtr := flag.Int("width", 1280, "Ширина")
	heightPtr := flag.Int("height", 720, "Высота")
	aspectPtr := flag.String("aspect", "", "Пресет формата: 16:9, 4:3, 9:16")
	scalePtr := flag.Float64("scale", 1.0, "Логический масштаб оверлея")
	inputPtr := flag.String("input", "", "Вход демо-режима: PDF или папка с изображениями (по умолчанию: самый свежий файл в input/, иначе тестовый паттерн)")
	framesPtr := flag.Int("frames", 90, "Количество кадров демо-режима")
	outputPtr := flag.String("output", "output", "Директория для PNG-кадров и предпросмотров")
	previewPtr := flag.Bool("preview", false, "Только предпросмотр: один PNG с оверлеем на прозрачном фоне")
	dpiPtr := flag.Int("dpi", 150, "DPI рендеринга PDF-источника")
	workersPtr := flag.Int("workers", 0, "Воркеры рендеринга (0 - по числу ядер)")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	width, height := *widthPtr, *heightPtr
	switch *aspectPtr {
	case "16:9":
		width, height = 1280, 720
	case "4:3":
		width, height = 1024, 768
	case "9:16":
		width, height = 720, 1280
	}

	cfg := &config.Config{
		PresetTable: *presetsPtr,
		PresetID:    *presetPtr,
		InputPath:   *inputPtr,
		OutputDir:   *outputPtr,
		Width:       width,
		Height:      height,
		Frames:      *framesPtr,
		Scale:       *scalePtr,
		ThemeName:   *themePtr,
		Workers:     *workersPtr,
		DPI:         *dpiPtr,
		Preview:     *previewPtr,
		ShowStats:   *statsPtr,
	}

	p := pickPreset(cfg)

	if cfg.ThemeName != "" {
		t := theme.Theme(cfg.ThemeName)
		if !theme.Known(t) {
			log.Fatalf("[-] Неизвестная тема: %q", cfg.ThemeName)
		}
		p.Theme = t
	}
	if *titlePtr != "" {
		p.Title = *titlePtr
	}
	if *subtitlePtr != "" {
		p.Subtitle = *subtitlePtr
	}

	eng, err := engine.New(engine.Options{Workers: cfg.Workers})
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации движка: %v", err)
	}
	defer eng.Close()

	if cfg.Preview {
		if err := runPreview(cfg, eng, p); err != nil {
			log.Fatalf("[-] Ошибка предпросмотра: %v", err)
		}
	} else {
		if err := runDemo(cfg, eng, p); err != nil {
			log.Fatalf("[-] Ошибка демо-режима: %v", err)
		}
	}

	if cfg.ShowStats {
		fmt.Print(eng.Report())
	}
}

// pickPreset загружает таблицу пресетов и выбирает активный.
func pickPreset(cfg *config.Config) preset.Preset {
	var presets []preset.Preset

	tablePath := cfg.PresetTable
	if tablePath == "" {
		if latest, err := system.FindLatestPresetTable("presets"); err == nil {
			tablePath = latest
		}
	}

	if tablePath != "" {
		table, err := preset.ReadTable(tablePath)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения таблицы пресетов: %v", err)
		}
		fmt.Printf("[*] Таблица пресетов: %s (%d шт.)\n", tablePath, len(table.Presets))
		presets = table.Presets
	} else {
		fmt.Println("[*] Используется встроенная таблица пресетов")
		presets = preset.DemoTable()
	}

	if len(presets) == 0 {
		log.Fatalf("[-] Таблица пресетов пуста")
	}

	if cfg.PresetID == "" {
		return presets[0]
	}
	for _, p := range presets {
		if p.ID == cfg.PresetID {
			return p
		}
	}
	log.Fatalf("[-] Пресет %q не найден", cfg.PresetID)
	return preset.Preset{}
}

func runPreview(cfg *config.Config, eng *engine.Engine, p preset.Preset) error {
	props := preset.PropsFor(p, cfg.Width, cfg.Height, cfg.Scale)

	buf, err := eng.RenderPreview(props)
	if err != nil {
		return err
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("preview_%s_%s.png", p.ID, timestamp))
	if err := writePNG(outPath, buf); err != nil {
		return err
	}

	fmt.Printf("[+++] Успех! Предпросмотр: %s\n", outPath)
	return nil
}

func runDemo(cfg *config.Config, eng *engine.Engine, p preset.Preset) error {
	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	width, height, err := src.Dimensions()
	if err != nil {
		return err
	}

	fmt.Println("--- [PROJECT: OVERLAY ENGINE] ---")
	fmt.Printf("[*] Пресет: %s (%s) | Тема: %s\n", p.ID, p.Name, p.Theme)
	fmt.Printf("[*] Разрешение: %dx%d | Масштаб: %.2f | Кадров: %d\n", width, height, cfg.Scale, cfg.Frames)
	fmt.Println("-----------------------------")

	if err := eng.SetProps(preset.PropsFor(p, width, height, cfg.Scale)); err != nil {
		return err
	}

	frameCount := src.FrameCount()
	for i := 0; i < cfg.Frames; i++ {
		frame, err := src.Frame(i % frameCount)
		if err != nil {
			log.Printf("[!] Ошибка источника на кадре %d: %v", i, err)
			continue
		}

		out := eng.GetCompositedFrame(frame)

		outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%04d.png", i))
		if err := writePNG(outPath, out); err != nil {
			return err
		}

		if (i+1)%30 == 0 || i+1 == cfg.Frames {
			fmt.Printf("[>] Ready: %d/%d\n", i+1, cfg.Frames)
		}
	}

	fmt.Printf("[+++] Успех! Кадры: %s\n", cfg.OutputDir)
	return nil
}

// openSource выбирает источник кадров: PDF, папка с изображениями или
// синтетический тестовый паттерн.
func openSource(cfg *config.Config) (source.Source, error) {
	inputPath := cfg.InputPath
	if inputPath == "" {
		if latest, err := system.FindLatestInput("input"); err == nil {
			inputPath = latest
			fmt.Printf("[*] Выбран вход: %s\n", inputPath)
		}
	}

	if inputPath == "" {
		fmt.Println("[*] Вход не найден, используется тестовый паттерн")
		return source.NewTestPatternSource(cfg.Width, cfg.Height, cfg.Frames)
	}

	if strings.HasSuffix(strings.ToLower(inputPath), ".pdf") {
		return source.NewFitzPDFSource(inputPath, float64(cfg.DPI))
	}
	return source.NewImageSource(inputPath)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
