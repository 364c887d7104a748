package contracts

type Backend string

const (
	BackendVips   Backend = "vips"
	BackendMagick Backend = "magick"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Settings is the resolved runtime configuration shared by commands and the UI.
type Settings struct {
	Quality     int
	Backend     Backend
	PreviewSize int

	LogFile  string
	LogColor ColorMode
	Debug    bool

	HistoryEnabled bool
	HistoryPath    string
}
