package tables

// SAIL is the Specific Assurance and Integrity Level. SAILOutOfScope is a
// terminal classification for operations beyond the matrix, not a level.
type SAIL int

const (
	SAILUnset SAIL = iota
	SAILI
	SAILII
	SAILIII
	SAILIV
	SAILV
	SAILVI
	SAILOutOfScope
	sailCount
)

var sailNames = [...]string{"", "I", "II", "III", "IV", "V", "VI", "out_of_scope"}

var (
	_ [len(sailNames) - int(sailCount)]struct{}
	_ [int(sailCount) - len(sailNames)]struct{}
)

// ParseSAIL accepts "I" through "VI" and "out_of_scope".
func ParseSAIL(s string) (SAIL, error) {
	return parseName[SAIL]("SAIL", sailNames[:], s)
}

func (s SAIL) String() string { return nameOf(sailNames[:], s) }

// Level reports whether s is one of I..VI.
func (s SAIL) Level() bool { return s >= SAILI && s <= SAILVI }

func (s SAIL) OutOfScope() bool { return s == SAILOutOfScope }

// Rank orders I..VI as 1..6 and OutOfScope above them; unset is 0.
func (s SAIL) Rank() int { return int(s) }

func (s SAIL) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SAIL) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = SAILUnset
		return nil
	}
	v, err := ParseSAIL(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// SAILs lists I..VI.
func SAILs() []SAIL { return []SAIL{SAILI, SAILII, SAILIII, SAILIV, SAILV, SAILVI} }
