package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FindLatestPresetTable возвращает самый свежий YAML-файл пресетов в
// директории dir.
func FindLatestPresetTable(dir string) (string, error) {
	return findLatest(dir, []string{".yaml", ".yml"}, "YAML-файлов пресетов")
}

// FindLatestInput возвращает самый свежий входной файл для демо-режима:
// PDF либо изображение.
func FindLatestInput(dir string) (string, error) {
	return findLatest(dir, []string{".pdf", ".jpg", ".jpeg", ".png"}, "входных файлов")
}

func findLatest(dir string, extensions []string, what string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		matched := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				matched = true
				break
			}
		}
		if matched {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено %s", dir, what)
	}

	return latestFile, nil
}
