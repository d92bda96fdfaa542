package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Validate(t *testing.T) {
	require.NoError(t, Session{Token: "t", UserID: "u", Email: "e@x"}.Validate())
	require.ErrorIs(t, Session{Token: "t", UserID: "u"}.Validate(), ErrIncompleteSession)
	require.ErrorIs(t, Session{}.Validate(), ErrIncompleteSession)
}

func TestSession_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(Session{Token: "tok", UserID: "42", Email: "a@b.c"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"tok","userId":"42","email":"a@b.c"}`, string(b))
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"to-read", StatusToRead, false},
		{"Reading", StatusReading, false},
		{" finished ", StatusFinished, false},
		{"paused", StatusPaused, false},
		{"did not finish", StatusDidNotFinish, false},
		{"did-not-finish", StatusDidNotFinish, false},
		{"DNF", StatusDidNotFinish, false},
		{"abandoned", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("did-not-finish").Valid())
	assert.False(t, Status("Reading").Valid())
	assert.Len(t, Statuses(), 5)
}

func TestBookSummary_DecodesSearchResult(t *testing.T) {
	raw := `{"workID":"/works/OL45804W","title":"Fantastic Mr Fox",
		"author_name":["Roald Dahl","Quentin Blake"],"first_publish_year":1970,
		"number_of_pages_median":96,"smallCoverURL":"https://covers.example/s.jpg"}`

	var b BookSummary
	require.NoError(t, json.Unmarshal([]byte(raw), &b))

	assert.Equal(t, "OL45804W", b.WorkID)
	assert.Equal(t, "Fantastic Mr Fox", b.Title)
	assert.Equal(t, "Roald Dahl", b.Author())
	require.NotNil(t, b.FirstPublishYear)
	assert.Equal(t, 1970, *b.FirstPublishYear)
	require.NotNil(t, b.PageCountMedian)
	assert.Equal(t, 96, *b.PageCountMedian)
	require.NotNil(t, b.CoverURL)
	assert.Equal(t, "https://covers.example/s.jpg", *b.CoverURL)
}

func TestBookSummary_MissingOptionalFields(t *testing.T) {
	var b BookSummary
	require.NoError(t, json.Unmarshal([]byte(`{"workID":"OL1W","title":"Untitled"}`), &b))

	assert.Nil(t, b.AuthorName)
	assert.Nil(t, b.FirstPublishYear)
	assert.Nil(t, b.PageCountMedian)
	assert.Nil(t, b.CoverURL)
	assert.Equal(t, "Unknown Author", b.Author())
}

func TestBookDetails_DecodesISBNRecord(t *testing.T) {
	raw := `{"workID":"OL123W","title":"Effective Java","bookAuthor":"Joshua Bloch",
		"cover":"https://covers.example/l.jpg","description":"Best practices."}`

	var d BookDetails
	require.NoError(t, json.Unmarshal([]byte(raw), &d))

	assert.Equal(t, "OL123W", d.WorkID)
	assert.Equal(t, "Joshua Bloch", d.Author())
	require.NotNil(t, d.Description)
	assert.Equal(t, "Best practices.", *d.Description)
	require.NotNil(t, d.CoverURL)
	assert.Equal(t, "https://covers.example/l.jpg", *d.CoverURL)
}

func TestLibraryEntry_DecodeAndFilter(t *testing.T) {
	raw := `[
		{"id":"1","workID":"OL1W","title":"A","status":"reading"},
		{"id":"2","workID":"OL2W","title":"B","status":"to-read"},
		{"id":"3","workID":"OL3W","title":"C","status":"did not finish"},
		{"id":"4","workID":"OL4W","title":"D","status":"reading"}
	]`

	var entries []LibraryEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, StatusDidNotFinish, entries[2].Status)

	reading := FilterByStatus(entries, StatusReading)
	require.Len(t, reading, 2)
	assert.Equal(t, "1", reading[0].ID)
	assert.Equal(t, "4", reading[1].ID)

	assert.Empty(t, FilterByStatus(entries, StatusPaused))
}

func TestNormalizeWorkID(t *testing.T) {
	assert.Equal(t, "OL123W", NormalizeWorkID("/works/OL123W"))
	assert.Equal(t, "OL123W", NormalizeWorkID("OL123W"))
	assert.Equal(t, "OL123W", NormalizeWorkID(" /works/OL123W "))
}
