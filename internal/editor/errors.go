package editor

import (
	"errors"

	"github.com/kozaktomas/album-editor/internal/placement"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrAssetInUse    = errors.New("asset is used on a page")
	ErrPageNotFound  = errors.New("page not found")
	ErrItemNotFound  = errors.New("item not found")
	ErrLastPage      = errors.New("cannot remove the last page")
	ErrInvalidValue  = errors.New("invalid value")
	ErrNoDrag        = errors.New("no drag in progress")

	// ErrNoFreeSlot is returned by placement commands in strict mode.
	ErrNoFreeSlot = placement.ErrNoFreeSlot
)
