package ports

import (
	"hypotest/domain/sample"
)

// TableReader loads an observation table from an external source such
// as an XLSX workbook or CSV file.
type TableReader interface {
	Read() (*sample.Table, error)
}
