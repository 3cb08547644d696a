package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnitrack/pkg/contracts/domain"
)

func member(id int64, first, last string) domain.Member {
	return domain.Member{
		ID:        id,
		ChapterID: 1,
		FirstName: first,
		LastName:  last,
		IsActive:  true,
	}
}

func TestLookupResolve(t *testing.T) {
	members := []domain.Member{
		member(1, "John", "Doe"),
		member(2, "Jane", "Smith"),
		member(3, "Robert", "Johnson"),
	}
	lookup := NewLookup(members)

	tests := []struct {
		name   string
		raw    string
		wantID int64
		weak   bool
	}{
		{
			name:   "exact full name",
			raw:    "John Doe",
			wantID: 1,
		},
		{
			name:   "titled and suffixed",
			raw:    "Mr. John Doe Jr.",
			wantID: 1,
		},
		{
			name:   "uppercase with extra spaces",
			raw:    "JANE   SMITH",
			wantID: 2,
		},
		{
			name:   "first name only is weak",
			raw:    "Robert",
			wantID: 3,
			weak:   true,
		},
		{
			name:   "surrounding whitespace",
			raw:    "  jane smith  ",
			wantID: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := lookup.Resolve(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.wantID, match.Member.ID)
			assert.Equal(t, tt.weak, match.Weak)
		})
	}
}

func TestLookupResolveMiss(t *testing.T) {
	lookup := NewLookup([]domain.Member{member(1, "John", "Doe")})

	for _, raw := range []string{"Unknown Person", "Doe", ""} {
		_, ok := lookup.Resolve(raw)
		assert.False(t, ok, "expected no match for %q", raw)
	}
}

func TestLookupCustomNormalizedName(t *testing.T) {
	m := member(7, "Jonathan", "Doe")
	m.NormalizedName = "johnny d"
	lookup := NewLookup([]domain.Member{m})

	match, ok := lookup.Resolve("Johnny D")
	require.True(t, ok)
	assert.Equal(t, int64(7), match.Member.ID)
	assert.False(t, match.Weak)

	// The plain full name still resolves alongside the override.
	match, ok = lookup.Resolve("Jonathan Doe")
	require.True(t, ok)
	assert.Equal(t, int64(7), match.Member.ID)
}

func TestLookupLiteralTier(t *testing.T) {
	// A first name that normalization would strip as a title still
	// resolves through the literal lowercase tier.
	lookup := NewLookup([]domain.Member{member(4, "Dr.", "Dre")})

	match, ok := lookup.Resolve("Dr. Dre")
	require.True(t, ok)
	assert.Equal(t, int64(4), match.Member.ID)
	assert.False(t, match.Weak)

	// Interior whitespace falls through to the collapsed tier.
	match, ok = lookup.Resolve("DR.   DRE")
	require.True(t, ok)
	assert.Equal(t, int64(4), match.Member.ID)
}

func TestLookupSharedFirstName(t *testing.T) {
	// The first-name key belongs to the first member registered with it.
	lookup := NewLookup([]domain.Member{
		member(1, "John", "Doe"),
		member(2, "John", "Smith"),
	})

	match, ok := lookup.Resolve("John")
	require.True(t, ok)
	assert.Equal(t, int64(1), match.Member.ID)
	assert.True(t, match.Weak)

	// Full names stay unambiguous.
	match, ok = lookup.Resolve("John Smith")
	require.True(t, ok)
	assert.Equal(t, int64(2), match.Member.ID)
	assert.False(t, match.Weak)
}

func TestLookupLen(t *testing.T) {
	lookup := NewLookup([]domain.Member{
		member(1, "John", "Doe"),
		member(2, "Jane", "Smith"),
	})
	// One full-name key and one first-name key per member.
	assert.Equal(t, 4, lookup.Len())
}
