package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"heic2jpg/contracts"
	"heic2jpg/converter"
	"heic2jpg/files_manager"
	"heic2jpg/preview"
	"heic2jpg/utils"
)

type SessionState int

const (
	StateBrowsing SessionState = iota
	StateAdding
	StateOutputDir
	StateConverting
	StateResults
	StateAbout
)

const previewCols = 40

// Options wires the model to the rest of the program.
type Options struct {
	Selection   *files_manager.Selection
	Converter   *converter.Converter
	Log         converter.Logger
	PreviewSize int
	// OnBatchDone runs on the UI goroutine once a batch has finished.
	OnBatchDone func(contracts.BatchSummary)
}

type Model struct {
	State SessionState

	selection *files_manager.Selection
	conv      *converter.Converter
	log       converter.Logger

	Cursor int
	marked map[string]bool

	input    textinput.Model
	progress progress.Model

	// Conversion
	batch     *converter.Batch
	done      int
	total     int
	last      contracts.ConversionResult
	summary   *contracts.BatchSummary
	outputDir string
	scroll    int

	// Preview pane
	previewSize int
	previewPath string
	previewArt  string
	previewMeta []string
	previewErr  error

	Status string
	Err    error

	onBatchDone func(contracts.BatchSummary)
	openDir     func(string) error

	width  int
	height int
}

func NewModel(opts Options) Model {
	sel := opts.Selection
	if sel == nil {
		sel = files_manager.NewSelection()
	}
	size := opts.PreviewSize
	if size <= 0 {
		size = preview.DefaultSize
	}
	log := opts.Log
	if log == nil && opts.Converter != nil {
		log = opts.Converter.Log
	}

	in := textinput.New()
	in.Width = 60

	return Model{
		State:       StateBrowsing,
		selection:   sel,
		conv:        opts.Converter,
		log:         log,
		marked:      map[string]bool{},
		input:       in,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		previewSize: size,
		onBatchDone: opts.OnBatchDone,
		openDir:     files_manager.OpenInFileBrowser,
	}
}

func (m Model) Init() tea.Cmd {
	return m.previewCurrent()
}

// Selection returns the list the model edits.
func (m Model) Selection() *files_manager.Selection {
	return m.selection
}

// Summary is the last finished batch, nil before the first one.
func (m Model) Summary() *contracts.BatchSummary {
	return m.summary
}

type fileConvertedMsg struct {
	Result contracts.ConversionResult
}

type previewMsg struct {
	Path string
	Art  string
	Meta []string
	Err  error
}

type openedMsg struct {
	Dir string
	Err error
}

// nextFileCmd converts one file. The batch is only touched from here until
// the resulting message comes back, so conversions never overlap.
func nextFileCmd(b *converter.Batch) tea.Cmd {
	return func() tea.Msg {
		result, _ := b.Next()
		return fileConvertedMsg{Result: result}
	}
}

func previewCmd(dec converter.Decoder, path string, size int) tea.Cmd {
	return func() tea.Msg {
		thumb, err := preview.Preview(dec, path, size, size)
		if err != nil {
			return previewMsg{Path: path, Err: err}
		}
		return previewMsg{
			Path: path,
			Art:  preview.RenderANSI(thumb, previewCols),
			Meta: metadataLines(path, thumb),
		}
	}
}

func metadataLines(path string, thumb contracts.RasterImage) []string {
	lines := []string{fmt.Sprintf("Thumbnail: %dx%d", thumb.Width, thumb.Height)}
	meta, err := utils.ReadImageMetadata(path)
	if err != nil {
		return lines
	}
	camera := strings.TrimSpace(meta.Make + " " + meta.Model)
	if camera != "" {
		lines = append(lines, "Camera: "+camera)
	}
	if meta.DateTime != "" {
		lines = append(lines, "Taken: "+meta.DateTime)
	}
	if meta.Orientation != 0 {
		lines = append(lines, "Orientation: "+utils.OrientationLabel(meta.Orientation))
	}
	return lines
}

func openDirCmd(open func(string) error, dir string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{Dir: dir, Err: open(dir)}
	}
}
