package imageload

import (
	"image"

	"github.com/google/uuid"
)

// State is the progress of one image instance
type State int

const (
	Idle State = iota
	Preview
	LoadingFull
	Loaded
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Preview:
		return "preview"
	case LoadingFull:
		return "loading-full"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	}
	return "unknown"
}

// Stage says which request a fetch belongs to
type Stage int

const (
	StagePreview Stage = iota
	StageFull
	StageFallback
)

// Request is an effect asking the loader to fetch and decode a URL
type Request struct {
	ID    uuid.UUID
	Stage Stage
	URL   string
}

// Image is one lazily loaded picture. It is a value; Reduce returns the next one.
type Image struct {
	ID          uuid.UUID
	Src         string
	PreviewSrc  string
	FallbackSrc string
	State       State

	PreviewPix  image.Image
	FullPix     image.Image
	FallbackPix image.Image
}

// Options for a new image
type Options struct {
	// Eager skips visibility gating and the preview stage
	Eager bool
	// Fallback is shown instead of the built-in graphic on error
	Fallback string
	// PreviewOf derives a low resolution URL; nil disables previews
	PreviewOf func(src string) (string, bool)
}

// New creates an image. A missing source is an immediate error.
func New(src string, opts Options) (Image, []Request) {
	img := Image{ID: uuid.New(), Src: src, FallbackSrc: opts.Fallback}
	if opts.PreviewOf != nil && src != "" {
		if p, ok := opts.PreviewOf(src); ok {
			img.PreviewSrc = p
		}
	}
	switch {
	case src == "":
		return img.fail()
	case opts.Eager:
		img.State = LoadingFull
		return img, []Request{{ID: img.ID, Stage: StageFull, URL: src}}
	}
	return img, nil
}

// Event drives the state machine
type Event interface{ isEvent() }

// Intersect fires when the image comes within the viewport margin
type Intersect struct{}

// Fetched carries a decoded result
type Fetched struct {
	Stage Stage
	Pix   image.Image
}

// Failed reports a fetch or decode failure
type Failed struct {
	Stage Stage
	Err   error
}

func (Intersect) isEvent() {}
func (Fetched) isEvent()   {}
func (Failed) isEvent()    {}

func (img Image) fail() (Image, []Request) {
	img.State = Error
	if img.FallbackSrc != "" {
		return img, []Request{{ID: img.ID, Stage: StageFallback, URL: img.FallbackSrc}}
	}
	return img, nil
}

// Reduce applies an event. Loaded and Error are final: later events only
// ever fill in the fallback picture.
func Reduce(img Image, ev Event) (Image, []Request) {
	switch img.State {
	case Loaded:
		return img, nil
	case Error:
		if f, ok := ev.(Fetched); ok && f.Stage == StageFallback {
			img.FallbackPix = f.Pix
		}
		return img, nil
	}

	switch ev := ev.(type) {
	case Intersect:
		if img.State != Idle {
			return img, nil
		}
		full := Request{ID: img.ID, Stage: StageFull, URL: img.Src}
		if img.PreviewSrc == "" {
			img.State = LoadingFull
			return img, []Request{full}
		}
		img.State = Preview
		return img, []Request{{ID: img.ID, Stage: StagePreview, URL: img.PreviewSrc}, full}

	case Fetched:
		switch ev.Stage {
		case StagePreview:
			if img.State == Preview {
				img.PreviewPix = ev.Pix
				img.State = LoadingFull
			}
		case StageFull:
			if img.State == Preview || img.State == LoadingFull {
				img.FullPix = ev.Pix
				img.State = Loaded
			}
		}
		return img, nil

	case Failed:
		if ev.Stage == StagePreview {
			if img.State == Preview {
				img.State = LoadingFull
			}
			return img, nil
		}
		if ev.Stage == StageFull {
			return img.fail()
		}
	}
	return img, nil
}
