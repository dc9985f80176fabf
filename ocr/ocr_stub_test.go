//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestStubNewReturnsError(t *testing.T) {
	_, err := New()
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got %v", err)
	}
}

func TestStubCloseIsSafe(t *testing.T) {
	var c *Client
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}
}

func TestStubRecognizeImageReturnsError(t *testing.T) {
	c := &Client{}
	if _, err := c.RecognizeImage([]byte{1, 2, 3}); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got %v", err)
	}
	if err := c.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got %v", err)
	}
}
