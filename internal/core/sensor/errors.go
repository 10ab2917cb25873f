package sensor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is wrapped by every error returned from a measurement
	// that needs a hit record the last scan did not produce.
	ErrInvalidState = errors.New("invalid sensor state")

	ErrNotScanned  = fmt.Errorf("%w: sensor has not scanned yet", ErrInvalidState)
	ErrNothingHit  = fmt.Errorf("%w: nothing was hit, check Hit before measuring", ErrInvalidState)
	ErrNoHitRecord = fmt.Errorf("%w: check box hits carry no hit record", ErrInvalidState)

	ErrInvalidConfig  = errors.New("invalid sensor configuration")
	ErrSensorExists   = errors.New("sensor already registered")
	ErrSensorNotFound = errors.New("sensor not found")
)
