package sora

import "github.com/dustin-aeria/muster-sub008/pkg/tables"

// ResolveSAIL maps (fGRC, residual ARC) through the SAIL matrix. An fGRC
// above the matrix bound resolves to tables.SAILOutOfScope, which is a
// classification and not an error.
func ResolveSAIL(fgrc int, residual tables.ARC) (tables.SAIL, error) {
	return tables.SAILFor(fgrc, residual)
}
