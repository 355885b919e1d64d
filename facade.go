package xbridge

// Facade helpers using global Singleton logger.
// Usage: xbridge.Info().Str("k","v").Msg("hello {k}")

func Debug() *Entry    { return L().Debug() }
func Info() *Entry     { return L().Info() }
func Warn() *Entry     { return L().Warn() }
func Error() *Entry    { return L().Error() }
func Critical() *Entry { return L().Critical() }
