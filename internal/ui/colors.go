package ui

// The Color* functions return the escape code of the active theme for each
// semantic color. They return "" when colors are disabled.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed is used for errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen is used for success.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow is used for warnings and timings.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue is used for names.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta is used for values.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan is used for secondary details.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold starts bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline starts underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }
