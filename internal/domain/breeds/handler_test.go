package breeds

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDogRequest(t *testing.T) {
	req, err := decodeDogRequest(strings.NewReader(`{
		"name": "Firulais",
		"height_min": "30",
		"height_max": 40,
		"weight_min": null,
		"temperaments": [1, 2],
		"owner": "ignored"
	}`))
	require.NoError(t, err)
	require.NotNil(t, req.Name)
	assert.Equal(t, "Firulais", *req.Name)
	require.NotNil(t, req.HeightMin)
	assert.Equal(t, Some(30), *req.HeightMin)
	assert.Equal(t, Some(40), *req.HeightMax)
	assert.Nil(t, req.WeightMin, "null leaves the field untouched")
	assert.Nil(t, req.YearsLife)
	assert.Equal(t, []int64{1, 2}, req.Temperaments)
}

func TestDecodeDogRequest_NamesTheBadField(t *testing.T) {
	cases := map[string]string{
		`{"name": "x", "height_min": "abc"}`: "height_min",
		`{"weight_max": true}`:               "weight_max",
		`{"temperaments": "1,2"}`:            "temperaments",
		`{"name": 5}`:                        "name",
		`{"image": "ok", "years_life": [1]}`: "years_life",
	}

	for body, field := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := decodeDogRequest(strings.NewReader(body))
			require.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestDecodeDogRequest_MalformedBody(t *testing.T) {
	for _, body := range []string{``, `{`, `[1,2]`, `"dog"`} {
		_, err := decodeDogRequest(strings.NewReader(body))
		require.ErrorIs(t, err, errMalformedBody, body)
	}
}
