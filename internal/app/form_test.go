package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in               string
		year, month, day int
		ok               bool
	}{
		{"1998-05-05", 1998, 5, 5, true},
		{"1998.05.05", 1998, 5, 5, true},
		{"1998/05/05", 1998, 5, 5, true},
		{"1998 05 05", 1998, 5, 5, true},
		{"19980505", 1998, 5, 5, true},
		{"2000.12.31", 2000, 12, 31, true},
		{"", 0, 0, 0, false},
		{"1998-5-5", 0, 0, 0, false},
		{"1998-13-01", 0, 0, 0, false},
		{"1998-00-10", 0, 0, 0, false},
		{"1998-01-32", 0, 0, 0, false},
		{"1998-01-00", 0, 0, 0, false},
		{"abcd-ef-gh", 0, 0, 0, false},
		{"199805051", 0, 0, 0, false},
	}
	for _, tt := range tests {
		y, m, d, err := ParseDate(tt.in)
		if !tt.ok {
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, [3]int{tt.year, tt.month, tt.day}, [3]int{y, m, d}, tt.in)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in           string
		hour, minute int
		known, ok    bool
	}{
		{"", 0, 0, false, true},
		{"13:30", 13, 30, true, true},
		{"0730", 7, 30, true, true},
		{"00:00", 0, 0, true, true},
		{"24:00", 0, 0, false, false},
		{"12:60", 0, 0, false, false},
		{"7:30", 0, 0, false, false},
		{"133:0", 0, 0, false, false},
		{"ab:cd", 0, 0, false, false},
	}
	for _, tt := range tests {
		h, m, known, err := ParseTime(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.hour, h, tt.in)
		assert.Equal(t, tt.minute, m, tt.in)
		assert.Equal(t, tt.known, known, tt.in)
	}
}

func TestValidMBTI(t *testing.T) {
	assert.True(t, ValidMBTI("ENTP"))
	assert.True(t, ValidMBTI("ISFJ"))
	assert.False(t, ValidMBTI("ENT"))
	assert.False(t, ValidMBTI("XNTP"))
	assert.False(t, ValidMBTI("entp"))
}

func TestValidate_Gender(t *testing.T) {
	_, err := Form{BirthDate: "19980505", Gender: "other", MBTI: "ENTP"}.validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "gender", ve.Field)

	sub, err := Form{BirthDate: "19980505", MBTI: "ENTP"}.validate()
	require.NoError(t, err)
	assert.Equal(t, "male", string(sub.request.Gender))
	assert.Empty(t, sub.entry.BirthTime)
}

func TestValidate_MBTI(t *testing.T) {
	sub, err := Form{BirthDate: "19980505"}.validate()
	require.NoError(t, err)
	assert.Equal(t, "ENTP", sub.request.MBTI)
	assert.Equal(t, "ENTP", sub.entry.MBTI)

	sub, err = Form{BirthDate: "19980505", MBTI: " isfj "}.validate()
	require.NoError(t, err)
	assert.Equal(t, "ISFJ", sub.request.MBTI)

	_, err = Form{BirthDate: "19980505", MBTI: "XNTP"}.validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "mbti", ve.Field)
	assert.Equal(t, msgMBTI, ve.Message)
}
