package cyclehighways

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	DEFAULT_AVERAGE_BIKE_SPEED  = 2.98
	DEFAULT_CYCLE_HIGHWAY_SPEED = 6.2
	DEFAULT_BIKE_LINK_CAPACITY  = 100000.0
	DEFAULT_BIKE_LINK_LANES     = 10.0
	DEFAULT_MIN_LINK_LENGTH     = 0.5
	DEFAULT_DUPLICATE_PREFIX    = "bike_"
)

// AugmentConfiguration holds physical parameters of bike links created during augmentation.
// Capacity and lanes are non-binding values, speeds are in network units (m/s for MATSim)
type AugmentConfiguration struct {
	AverageBikeSpeed  float64   `yaml:"average_bike_speed" mapstructure:"average_bike_speed" validate:"gt=0"`
	CycleHighwaySpeed float64   `yaml:"cycle_highway_speed" mapstructure:"cycle_highway_speed" validate:"gt=0"`
	Capacity          float64   `yaml:"capacity" mapstructure:"capacity" validate:"gt=0"`
	Lanes             float64   `yaml:"lanes" mapstructure:"lanes" validate:"gt=0"`
	MinLinkLength     float64   `yaml:"min_link_length" mapstructure:"min_link_length" validate:"gte=0"`
	DuplicatePrefix   string    `yaml:"duplicate_prefix" mapstructure:"duplicate_prefix" validate:"required"`
	BikeAgentType     AgentType `yaml:"bike_mode" mapstructure:"bike_mode" validate:"required"`
}

func DefaultAugmentConfiguration() AugmentConfiguration {
	return AugmentConfiguration{
		AverageBikeSpeed:  DEFAULT_AVERAGE_BIKE_SPEED,
		CycleHighwaySpeed: DEFAULT_CYCLE_HIGHWAY_SPEED,
		Capacity:          DEFAULT_BIKE_LINK_CAPACITY,
		Lanes:             DEFAULT_BIKE_LINK_LANES,
		MinLinkLength:     DEFAULT_MIN_LINK_LENGTH,
		DuplicatePrefix:   DEFAULT_DUPLICATE_PREFIX,
		BikeAgentType:     AGENT_BIKE,
	}
}

var validate = validator.New()

// Validate checks configuration against its constraints
func (cfg AugmentConfiguration) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return fmt.Errorf("Bad augment configuration: field '%s' failed on '%s' (got '%v')", fieldErr.Field(), fieldErr.Tag(), fieldErr.Value())
	}
	return errors.Wrap(err, "Bad augment configuration")
}

func (cfg AugmentConfiguration) String() string {
	return fmt.Sprintf(`
Augment parameters:
	average_bike_speed: %f
	cycle_highway_speed: %f
	capacity: %f
	lanes: %f
	min_link_length: %f
	duplicate_prefix: '%s'
	bike_mode: '%s'
	`,
		cfg.AverageBikeSpeed,
		cfg.CycleHighwaySpeed,
		cfg.Capacity,
		cfg.Lanes,
		cfg.MinLinkLength,
		cfg.DuplicatePrefix,
		cfg.BikeAgentType,
	)
}
