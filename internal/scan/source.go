package scan

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/pantryscan/inventory-service/internal/models"
)

// ScanError reports a scan source failure (camera, permission, hardware).
// Validation failures of the decoded string itself are models.ErrInvalidBarcode.
type ScanError struct {
	Reason string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan failed: %s", e.Reason)
}

// IsScanError reports whether err is a ScanError.
func IsScanError(err error) bool {
	var scanErr *ScanError
	return errors.As(err, &scanErr)
}

// Source produces decoded barcode strings, one per successful scan. Next
// blocks until a barcode is available, the source is exhausted (io.EOF), or
// the context is done. The core only ever consumes the decoded string, never
// the imaging pipeline behind it.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// ManualSource is a Source fed by manual text entry. Submitted codes are
// validated before they enter the sequence, so consumers only ever see
// well-formed barcodes.
type ManualSource struct {
	codes chan string
}

// NewManualSource creates a manual entry source buffering up to size codes
func NewManualSource(size int) *ManualSource {
	return &ManualSource{
		codes: make(chan string, size),
	}
}

// Submit validates and enqueues a manually entered barcode
func (s *ManualSource) Submit(code string) error {
	if err := models.ValidateBarcode(code); err != nil {
		return err
	}

	select {
	case s.codes <- code:
		return nil
	default:
		return &ScanError{Reason: "entry buffer full"}
	}
}

// Close ends the sequence; Next returns io.EOF once drained
func (s *ManualSource) Close() {
	close(s.codes)
}

// Next returns the next submitted barcode
func (s *ManualSource) Next(ctx context.Context) (string, error) {
	select {
	case code, ok := <-s.codes:
		if !ok {
			return "", io.EOF
		}
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
