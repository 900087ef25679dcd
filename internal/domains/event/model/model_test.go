package model_test

import (
	"testing"
	"time"

	"roamalto/internal/domains/event/model"

	"github.com/stretchr/testify/assert"
)

func TestVisitFingerprint(t *testing.T) {
	morning := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	t.Run("stable within the same day", func(t *testing.T) {
		first := model.VisitFingerprint("Mozilla/5.0", "203.0.113.7", morning, "sess-1")
		second := model.VisitFingerprint("Mozilla/5.0", "203.0.113.7", evening, "sess-1")

		assert.Equal(t, first, second)
		assert.Len(t, first, 64)
	})

	t.Run("distinct across days", func(t *testing.T) {
		today := model.VisitFingerprint("Mozilla/5.0", "203.0.113.7", morning, "sess-1")
		tomorrow := model.VisitFingerprint("Mozilla/5.0", "203.0.113.7", nextDay, "sess-1")

		assert.NotEqual(t, today, tomorrow)
	})

	t.Run("distinct per visitor identity", func(t *testing.T) {
		base := model.VisitFingerprint("Mozilla/5.0", "203.0.113.7", morning, "sess-1")

		assert.NotEqual(t, base, model.VisitFingerprint("curl/8.0", "203.0.113.7", morning, "sess-1"))
		assert.NotEqual(t, base, model.VisitFingerprint("Mozilla/5.0", "198.51.100.1", morning, "sess-1"))
		assert.NotEqual(t, base, model.VisitFingerprint("Mozilla/5.0", "203.0.113.7", morning, "sess-2"))
	})

	t.Run("day boundary uses UTC", func(t *testing.T) {
		jakarta := time.FixedZone("WIB", 7*3600)
		lateLocal := time.Date(2026, 3, 15, 5, 0, 0, 0, jakarta) // still 2026-03-14 in UTC

		assert.Equal(t,
			model.VisitFingerprint("Mozilla/5.0", "203.0.113.7", evening, "sess-1"),
			model.VisitFingerprint("Mozilla/5.0", "203.0.113.7", lateLocal, "sess-1"),
		)
	})
}
