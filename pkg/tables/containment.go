package tables

import "math"

// Adjacent area sizing: the distance the UA covers in three minutes at
// maximum speed, bounded to [5 km, 35 km].
const (
	AdjacentAreaFlightTimeS = 180.0
	AdjacentAreaMinM        = 5000.0
	AdjacentAreaMaxM        = 35000.0
)

// AdjacentAreaDistance maps maximum aircraft speed (m/s) to the adjacent
// area buffer distance in metres. Non-positive speeds yield the floor.
func AdjacentAreaDistance(maxSpeedMS float64) float64 {
	if maxSpeedMS <= 0 || math.IsNaN(maxSpeedMS) {
		return AdjacentAreaMinM
	}
	d := maxSpeedMS * AdjacentAreaFlightTimeS
	return math.Min(math.Max(d, AdjacentAreaMinM), AdjacentAreaMaxM)
}

// ContainmentMethod is a means of keeping the UA inside the operational
// volume, with the robustness it can achieve.
type ContainmentMethod struct {
	Key        string
	Label      string
	Achievable Robustness
	Evidence   []string
}

var containmentMethods = []ContainmentMethod{
	{Key: "none", Label: "No containment measure", Achievable: RobustnessNone},
	{
		Key:        "geofence",
		Label:      "Software geofence",
		Achievable: RobustnessLow,
		Evidence: []string{
			"Geofence configuration record",
			"Pre-flight geofence functional check",
		},
	},
	{
		Key:        "geocage",
		Label:      "Independent geocage with automatic flight termination",
		Achievable: RobustnessMedium,
		Evidence: []string{
			"Independent termination system design description",
			"Termination system functional test report",
			"Emergency procedure for containment loss",
		},
	},
	{
		Key:        "tether",
		Label:      "Tethered operation",
		Achievable: RobustnessHigh,
		Evidence: []string{
			"Tether strength and attachment certificate",
			"Tether length limitation record",
		},
	},
	{
		Key:        "fts_parachute",
		Label:      "Certified flight termination with parachute",
		Achievable: RobustnessHigh,
		Evidence: []string{
			"Flight termination system certification",
			"Parachute deployment test report",
			"Single failure analysis of the termination chain",
		},
	},
}

func (c ContainmentMethod) clone() ContainmentMethod {
	if c.Evidence != nil {
		c.Evidence = append([]string(nil), c.Evidence...)
	}
	return c
}

// ContainmentMethods returns a copy of the catalog in display order.
func ContainmentMethods() []ContainmentMethod {
	out := make([]ContainmentMethod, len(containmentMethods))
	for i, c := range containmentMethods {
		out[i] = c.clone()
	}
	return out
}

// ContainmentMethodByKey looks a method up by its stored key.
func ContainmentMethodByKey(key string) (ContainmentMethod, error) {
	for _, c := range containmentMethods {
		if c.Key == key {
			return c.clone(), nil
		}
	}
	return ContainmentMethod{}, invalid("containment method", key)
}
