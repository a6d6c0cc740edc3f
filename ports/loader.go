package ports

import (
	"statscope/domain/dataset"
)

// DatasetReader converts an external file into the in-memory dataset shape.
// Implementations own parsing concerns (encodings, sheets, delimiters); the
// engine only ever sees typed cells.
type DatasetReader interface {
	ReadDataset() (*dataset.Dataset, error)
}
