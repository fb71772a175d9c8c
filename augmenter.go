package cyclehighways

import (
	"go.uber.org/zap"
)

// LinkWarning flags a created link for manual review
type LinkWarning struct {
	LinkID NetworkLinkID
	Length float64
}

// Augmenter adds bike links to a multi-modal network
type Augmenter struct {
	cfg      AugmentConfiguration
	logger   *zap.Logger
	warnings []LinkWarning
}

func NewAugmenter(options ...func(*Augmenter)) *Augmenter {
	augmenter := &Augmenter{
		cfg:    DefaultAugmentConfiguration(),
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(augmenter)
	}
	return augmenter
}

func (augmenter *Augmenter) Configuration() AugmentConfiguration {
	return augmenter.cfg
}

// Warnings returns data-quality warnings collected during the last run
func (augmenter *Augmenter) Warnings() []LinkWarning {
	return augmenter.warnings
}

func WithConfiguration(cfg AugmentConfiguration) func(*Augmenter) {
	return func(augmenter *Augmenter) {
		augmenter.cfg = cfg
	}
}

func WithAverageBikeSpeed(speed float64) func(*Augmenter) {
	return func(augmenter *Augmenter) {
		augmenter.cfg.AverageBikeSpeed = speed
	}
}

func WithCycleHighwaySpeed(speed float64) func(*Augmenter) {
	return func(augmenter *Augmenter) {
		augmenter.cfg.CycleHighwaySpeed = speed
	}
}

func WithBikeLinkCapacity(capacity float64) func(*Augmenter) {
	return func(augmenter *Augmenter) {
		augmenter.cfg.Capacity = capacity
	}
}

func WithBikeLinkLanes(lanes float64) func(*Augmenter) {
	return func(augmenter *Augmenter) {
		augmenter.cfg.Lanes = lanes
	}
}

func WithMinLinkLength(length float64) func(*Augmenter) {
	return func(augmenter *Augmenter) {
		augmenter.cfg.MinLinkLength = length
	}
}

func WithDuplicatePrefix(prefix string) func(*Augmenter) {
	return func(augmenter *Augmenter) {
		augmenter.cfg.DuplicatePrefix = prefix
	}
}

func WithLogger(logger *zap.Logger) func(*Augmenter) {
	return func(augmenter *Augmenter) {
		if logger != nil {
			augmenter.logger = logger
		}
	}
}
