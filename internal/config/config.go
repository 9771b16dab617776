package config

const (
	WindowWidth  = 1024
	WindowHeight = 640

	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	LevelSamples    = 2048

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 30

	// Progress bar
	BarHeight = 24
	BarMargin = 20
	BarBottom = 60

	// Minimum gap between two seeks while dragging the progress bar
	SeekCooldownMillis = 50

	DefaultArtist = "George Singer"
	DefaultSketch = "mandala"
)
