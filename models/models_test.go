package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLinks(t *testing.T) {
	t.Run("derives both links from file ID", func(t *testing.T) {
		rec := &DeliveryRecord{OrderRef: "R1", FileID: "F1"}
		view, download := rec.ResolveLinks()
		assert.Equal(t, "https://drive.google.com/file/d/F1/view?usp=sharing", view)
		assert.Equal(t, "https://drive.google.com/uc?export=download&id=F1", download)
	})

	t.Run("stored links are never rewritten", func(t *testing.T) {
		rec := &DeliveryRecord{
			OrderRef:           "R1",
			FileID:             "F1",
			ViewLink:           "https://example.com/custom-view",
			DirectDownloadLink: "https://example.com/custom-download",
		}
		view, download := rec.ResolveLinks()
		assert.Equal(t, "https://example.com/custom-view", view)
		assert.Equal(t, "https://example.com/custom-download", download)
	})

	t.Run("derives only the missing link", func(t *testing.T) {
		rec := &DeliveryRecord{
			OrderRef: "R1",
			FileID:   "F1",
			ViewLink: "https://example.com/custom-view",
		}
		view, download := rec.ResolveLinks()
		assert.Equal(t, "https://example.com/custom-view", view)
		assert.Equal(t, "https://drive.google.com/uc?export=download&id=F1", download)
	})

	t.Run("no file ID leaves links empty", func(t *testing.T) {
		rec := &DeliveryRecord{OrderRef: "R1"}
		view, download := rec.ResolveLinks()
		assert.Empty(t, view)
		assert.Empty(t, download)
	})
}
