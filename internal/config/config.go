package config

type Config struct {
	PresetTable string
	PresetID    string
	InputPath   string
	OutputDir   string
	Width       int
	Height      int
	Frames      int
	Scale       float64
	ThemeName   string
	Workers     int
	DPI         int
	Preview     bool
	ShowStats   bool
}
