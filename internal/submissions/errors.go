package submissions

import "errors"

var (
	ErrRender   = errors.New("render summary")
	ErrArtifact = errors.New("summary artifact")
)
