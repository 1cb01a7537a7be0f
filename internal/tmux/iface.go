package tmux

// PaneCapturer abstracts pane enumeration and capture for testing.
type PaneCapturer interface {
	ListPanes(session string) ([]Pane, error)
	CapturePane(paneID string) (string, error)
	PaneExists(paneID string) bool
}

// RealTmux delegates to the package-level functions.
type RealTmux struct{}

func (RealTmux) ListPanes(session string) ([]Pane, error) {
	return ListPanes(session)
}

func (RealTmux) CapturePane(paneID string) (string, error) {
	return CapturePane(paneID)
}

func (RealTmux) PaneExists(paneID string) bool {
	return PaneExists(paneID)
}
