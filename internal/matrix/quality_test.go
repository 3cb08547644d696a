package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bnitrack/pkg/contracts/domain"
)

func TestQuality(t *testing.T) {
	report := Quality([]domain.Interaction{
		ref("alice johnson", "bob smith"),
		ref("alice johnson", "bob smith"),
		ref("carol white", "carol white"),
		oto("alice johnson", "bob smith"),
		oto("bob smith", "alice johnson"),
		tyfcb("", "alice johnson", "1200"),
		tyfcb("bob smith", "carol white", "-50"),
	})

	assert.Equal(t, 7, report.TotalRecords)
	assert.Equal(t, 3, report.TotalIssues)

	assert.Equal(t, 3, report.Referrals.Total)
	assert.Equal(t, 1, report.Referrals.SelfPaired)
	assert.Equal(t, 1, report.Referrals.Duplicates)

	assert.Equal(t, 2, report.OneToOnes.Total)
	assert.Zero(t, report.OneToOnes.SelfPaired)
	assert.Equal(t, 1, report.OneToOnes.Duplicates, "reversed order is the same meeting")

	assert.Equal(t, 2, report.TYFCBTotal)
	assert.Equal(t, 1, report.TYFCBNegativeCount)

	assert.InDelta(t, 57.14, report.OverallQualityScore, 0.01)
}

func TestQualityCleanRecords(t *testing.T) {
	report := Quality([]domain.Interaction{
		ref("alice johnson", "bob smith"),
		oto("carol white", "david brown"),
		tyfcb("", "emma davis", "3000"),
	})

	assert.Equal(t, 3, report.TotalRecords)
	assert.Zero(t, report.TotalIssues)
	assert.InDelta(t, 100.0, report.OverallQualityScore, 0.001)
}

func TestQualityEmpty(t *testing.T) {
	report := Quality(nil)

	assert.Zero(t, report.TotalRecords)
	assert.InDelta(t, 100.0, report.OverallQualityScore, 0.001)
}
