package imageload

import (
	"context"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	fetchTimeout  = 15 * time.Second
	decodedImages = 256
)

// LoadedMsg is delivered to the bubbletea program when a request settles
type LoadedMsg struct {
	ID    uuid.UUID
	Stage Stage
	URL   string
	Pix   image.Image
	Err   error
}

// Event converts the message into a state machine event
func (m LoadedMsg) Event() Event {
	if m.Err != nil {
		return Failed{Stage: m.Stage, Err: m.Err}
	}
	return Fetched{Stage: m.Stage, Pix: m.Pix}
}

// Loader turns requests into tea commands. Decoded images are shared across
// instances for the session.
type Loader struct {
	log     *zap.Logger
	fetcher Fetcher
	formats *Formats
	decoded *lru.Cache[string, image.Image]
}

func NewLoader(log *zap.Logger, fetcher Fetcher, formats *Formats) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if formats == nil {
		formats = NewFormats()
	}
	decoded, _ := lru.New[string, image.Image](decodedImages)
	return &Loader{log: log, fetcher: fetcher, formats: formats, decoded: decoded}
}

// Load returns a command that fetches and decodes one request
func (l *Loader) Load(req Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		pix, err := l.fetch(ctx, req)
		if err != nil {
			l.log.Debug("image load failed", zap.String("url", req.URL), zap.Error(err))
		}
		return LoadedMsg{ID: req.ID, Stage: req.Stage, URL: req.URL, Pix: pix, Err: err}
	}
}

// Batch loads every request concurrently
func (l *Loader) Batch(reqs []Request) tea.Cmd {
	if len(reqs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, r := range reqs {
		cmds = append(cmds, l.Load(r))
	}
	return tea.Batch(cmds...)
}

func (l *Loader) fetch(ctx context.Context, req Request) (image.Image, error) {
	key := cacheKey(req)
	if pix, ok := l.decoded.Get(key); ok {
		return pix, nil
	}
	data, mime, err := l.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	pix, err := l.formats.Decode(data, mime)
	if err != nil {
		return nil, err
	}
	if req.Stage == StagePreview {
		pix = Soften(pix)
	}
	l.decoded.Add(key, pix)
	return pix, nil
}

func cacheKey(req Request) string {
	if req.Stage == StagePreview {
		return "preview:" + req.URL
	}
	return req.URL
}

// WithinMargin reports whether the span [top, bottom) lies within margin
// rows of the visible span [viewTop, viewBottom).
func WithinMargin(top, bottom, viewTop, viewBottom, margin int) bool {
	return bottom > viewTop-margin && top < viewBottom+margin
}
