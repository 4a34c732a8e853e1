package types

import "errors"

// Network construction errors. Surfaced by Config.Validate and
// network initialization.
var (
	ErrDuplicateEntityName = errors.New("duplicate entity name")
	ErrDuplicateAssetName  = errors.New("duplicate asset name")
	ErrDuplicateEdge       = errors.New("duplicate partnership edge")
	ErrInvalidShare        = errors.New("share must be in (0, 1]")
	ErrInvalidAssetType    = errors.New("invalid asset type")
	ErrInvalidName         = errors.New("invalid name")
	ErrSelfPartnership     = errors.New("entity cannot partner with itself")
)

// Reference errors. Returned when a transaction or config names an
// entity or asset that is not present in the network.
var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrUnknownAsset  = errors.New("unknown asset")
)

// Transaction errors. Viability violations are detected before any
// mutation; the network is left unchanged.
var (
	ErrInvalidGood      = errors.New("invalid good")
	ErrInsufficientGood = errors.New("entity does not hold the good")
	ErrInsufficientCash = errors.New("insufficient cash balance")
	ErrCyclicOwnership  = errors.New("cyclic ownership detected")
)
