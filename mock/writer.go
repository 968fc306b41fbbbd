package mock

import (
	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.RowWriter = (*Writer)(nil)

// Writer is a mock implementation of gpuprice.RowWriter.
type Writer struct {
	WriteCSVFn  func(path string, rows []gpuprice.Row) error
	WriteJSONFn func(path string, rows []gpuprice.Row) error
}

func (w *Writer) WriteCSV(path string, rows []gpuprice.Row) error {
	return w.WriteCSVFn(path, rows)
}

func (w *Writer) WriteJSON(path string, rows []gpuprice.Row) error {
	return w.WriteJSONFn(path, rows)
}
