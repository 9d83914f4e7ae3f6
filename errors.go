package pageslim

import (
	"errors"

	"github.com/alnah/go-pageslim/internal/fileutil"
	"github.com/alnah/go-pageslim/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyAssetDir = errors.New("asset directory cannot be empty")
	ErrReadInput     = errors.New("failed to read input HTML")
	ErrWriteOutput   = errors.New("failed to write output HTML")

	// Document errors.
	ErrParse  = pipeline.ErrParse
	ErrRender = pipeline.ErrRender
	ErrNoHead = pipeline.ErrNoHead

	// Embedded data errors.
	ErrMalformedDataURI = pipeline.ErrMalformedDataURI
	ErrDecodePayload    = pipeline.ErrDecodePayload

	// Asset output errors.
	ErrCreateAssetDir = fileutil.ErrCreateDir
	ErrWriteAsset     = fileutil.ErrWriteAsset
	ErrInvalidName    = fileutil.ErrNamePathTraversal
)
