package config

// VehicleProfile is one entry of the fixed behavioral-profile dictionary
// (spec §4.6): a speed multiplier applied to the street's speed limit, and a
// reaction time used by the car-following safety-headway rule.
type VehicleProfile struct {
	SpeedFactor  float64 `yaml:"speed_factor"`
	ReactionTime float64 `yaml:"reaction_time"`
}

// PhaseDurations gives the duration, in seconds, of each signal phase in the
// fixed GREEN->YELLOW->RED->RED_YELLOW cycle (spec §3/§4.2).
type PhaseDurations struct {
	Green     float64 `yaml:"green"`
	Yellow    float64 `yaml:"yellow"`
	Red       float64 `yaml:"red"`
	RedYellow float64 `yaml:"red_yellow"`
}

// SyntheticBuilder configures the random planar network generator (spec
// §4.1).
type SyntheticBuilder struct {
	MinLengthM     float64 `yaml:"min_length_m"`
	MaxLengthM     float64 `yaml:"max_length_m"`
	MinSpeedKmh    float64 `yaml:"min_speed_kmh"`
	MaxSpeedKmh    float64 `yaml:"max_speed_kmh"`
	BoxSizeM       float64 `yaml:"box_size_m"`
	PlacementTries int     `yaml:"placement_tries"`
}

// Control holds the simulation's time-stepping and spawn parameters.
type Control struct {
	SeedSpawns         int     `yaml:"seed_spawns"`
	RespawnProbability float64 `yaml:"respawn_probability"`
}

// Config is the YAML-loaded root configuration for a simulation run. It is
// the "immutable config object" called for in spec §9's design notes:
// signal phase durations and vehicle profiles are no longer module-level
// constants, they're injected once at Simulator construction.
type Config struct {
	Control         Control                   `yaml:"control"`
	Phases          PhaseDurations            `yaml:"phases"`
	VehicleProfiles map[string]VehicleProfile `yaml:"vehicle_profiles"`
	Synthetic       SyntheticBuilder          `yaml:"synthetic"`
}
