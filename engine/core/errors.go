package core

import (
	"errors"
)

var (
	// ErrRefineShortfall means a refined attribute array holds fewer elements
	// than the domain it must cover.
	ErrRefineShortfall = errors.New("refined data smaller than expected domain")
	// ErrOversizedSource means uniform data exceeds the unrefined face count.
	ErrOversizedSource = errors.New("uniform data larger than face count")
	// ErrConstantSize means constant data does not hold exactly one element.
	ErrConstantSize = errors.New("constant attribute, incompatible size")
	// ErrUnsupportedType means no populator matches the value type or
	// interpolation class.
	ErrUnsupportedType = errors.New("unsupported attribute type or interpolation")
	ErrUnknown         = errors.New("unknown")
)
