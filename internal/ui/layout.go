package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutAttitudeWidth is the minimum width to show attitude columns.
	LayoutAttitudeWidth = 110
)

// Modal sizes.
const (
	modalWidth         = 50
	settingsModalWidth = 72
	helpModalWidth     = 44
)

// Log overlay limits.
const (
	// LogTailLines is the number of log lines shown by the overlay.
	LogTailLines = 400

	// LogRefreshInterval is how often the overlay rereads the log file.
	LogRefreshInterval = time.Second
)

// chromeHeight is the rows taken by the header and command bar.
const chromeHeight = 2
