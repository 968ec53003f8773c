package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMentionsSingleWordName(t *testing.T) {
	got := ParseMentions("hey @alice please review", []string{"alice", "bob"})
	assert.Equal(t, []string{"alice"}, got)
}

// Names with spaces resolve as a unit; the longest known identity wins at
// each '@'.
func TestParseMentionsMultiWordName(t *testing.T) {
	known := []string{"Mohamed", "Mohamed Alami"}
	got := ParseMentions("ping @Mohamed Alami about the route", known)
	assert.Equal(t, []string{"Mohamed Alami"}, got)
}

func TestParseMentionsWordBoundary(t *testing.T) {
	// "@bobby" must not resolve to the known user "bob".
	got := ParseMentions("cc @bobby", []string{"bob"})
	assert.Empty(t, got)

	// Punctuation after the name is a valid boundary.
	got = ParseMentions("thanks @bob!", []string{"bob"})
	assert.Equal(t, []string{"bob"}, got)
}

func TestParseMentionsCaseInsensitiveMatchCanonicalResult(t *testing.T) {
	got := ParseMentions("escalating to @ALICE", []string{"alice"})
	assert.Equal(t, []string{"alice"}, got)
}

// The legacy "Super Admin" spelling resolves even when the user table only
// knows "SuperAdmin", and both spellings dedup to one mention.
func TestParseMentionsLegacySuperAdmin(t *testing.T) {
	got := ParseMentions("fyi @Super Admin and @SuperAdmin", []string{"SuperAdmin"})
	assert.Equal(t, []string{"SuperAdmin"}, got)
}

func TestParseMentionsDeduplicatesPreservingOrder(t *testing.T) {
	got := ParseMentions("@bob then @alice then @bob again", []string{"alice", "bob"})
	assert.Equal(t, []string{"bob", "alice"}, got)
}

// Runes whose lowercase form has a different byte length (U+212A KELVIN
// SIGN folds to a one-byte 'k') must not shift match offsets or run the
// scan past the end of the text.
func TestParseMentionsUnicodeTextKeepsOffsets(t *testing.T) {
	got := ParseMentions("K @bob hi", []string{"bob"})
	assert.Equal(t, []string{"bob"}, got)

	assert.NotPanics(t, func() {
		got = ParseMentions("KK@b", []string{"b"})
	})
	assert.Equal(t, []string{"b"}, got)
}

func TestParseMentionsNoKnownUsers(t *testing.T) {
	assert.Empty(t, ParseMentions("@alice", nil))
	assert.Empty(t, ParseMentions("no mentions here", []string{"alice"}))
	assert.Empty(t, ParseMentions("mail me at x@example.com", []string{"bob"}))
}
