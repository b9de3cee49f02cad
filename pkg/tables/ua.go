package tables

import "fmt"

// UAClass is a UA characteristic bucket: maximum characteristic dimension
// and maximum speed.
type UAClass int

const (
	UAClassUnset UAClass = iota
	UAClass1m
	UAClass3m
	UAClass8m
	UAClass20m
	UAClass40m
	uaClassCount
)

var uaClassNames = [...]string{
	"",
	"1m_25ms",
	"3m_35ms",
	"8m_75ms",
	"20m_120ms",
	"40m_200ms",
}

// UAClassInfo holds the bounds of one bucket.
type UAClassInfo struct {
	Key           UAClass `json:"key" yaml:"key"`
	Label         string  `json:"label" yaml:"label"`
	MaxDimensionM float64 `json:"max_dimension_m" yaml:"max_dimension_m"`
	MaxSpeedMS    float64 `json:"max_speed_ms" yaml:"max_speed_ms"`
}

var uaClassBounds = [...]UAClassInfo{
	UAClass1m:  {MaxDimensionM: 1, MaxSpeedMS: 25},
	UAClass3m:  {MaxDimensionM: 3, MaxSpeedMS: 35},
	UAClass8m:  {MaxDimensionM: 8, MaxSpeedMS: 75},
	UAClass20m: {MaxDimensionM: 20, MaxSpeedMS: 120},
	UAClass40m: {MaxDimensionM: 40, MaxSpeedMS: 200},
}

var (
	_ [len(uaClassNames) - int(uaClassCount)]struct{}
	_ [int(uaClassCount) - len(uaClassNames)]struct{}
	_ [len(uaClassBounds) - int(uaClassCount)]struct{}
	_ [int(uaClassCount) - len(uaClassBounds)]struct{}
)

// ParseUAClass accepts either the bucket key ("1m_25ms") or its display
// label ("≤1 m / ≤25 m/s").
func ParseUAClass(s string) (UAClass, error) {
	if c, err := parseName[UAClass]("UA characteristic", uaClassNames[:], s); err == nil {
		return c, nil
	}
	for c := UAClass1m; c < uaClassCount; c++ {
		if c.Label() == s {
			return c, nil
		}
	}
	return UAClassUnset, invalid("UA characteristic", s)
}

func (c UAClass) String() string { return nameOf(uaClassNames[:], c) }

func (c UAClass) Valid() bool { return c > UAClassUnset && c < uaClassCount }

func (c UAClass) Label() string {
	if !c.Valid() {
		return ""
	}
	b := uaClassBounds[c]
	return fmt.Sprintf("≤%g m / ≤%g m/s", b.MaxDimensionM, b.MaxSpeedMS)
}

func (c UAClass) Info() UAClassInfo {
	if !c.Valid() {
		return UAClassInfo{Key: c}
	}
	info := uaClassBounds[c]
	info.Key = c
	info.Label = c.Label()
	return info
}

func (c UAClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *UAClass) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = UAClassUnset
		return nil
	}
	v, err := ParseUAClass(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UAClasses lists the buckets in ascending order.
func UAClasses() []UAClass {
	out := make([]UAClass, 0, uaClassCount-1)
	for c := UAClass1m; c < uaClassCount; c++ {
		out = append(out, c)
	}
	return out
}

// UAClassFor returns the first bucket, ascending, whose dimension and speed
// bounds are both not exceeded. It returns false when either value is not
// positive or the aircraft exceeds the largest bucket.
func UAClassFor(maxDimensionM, maxSpeedMS float64) (UAClass, bool) {
	if maxDimensionM <= 0 || maxSpeedMS <= 0 {
		return UAClassUnset, false
	}
	for _, c := range UAClasses() {
		b := uaClassBounds[c]
		if maxDimensionM <= b.MaxDimensionM && maxSpeedMS <= b.MaxSpeedMS {
			return c, true
		}
	}
	return UAClassUnset, false
}
