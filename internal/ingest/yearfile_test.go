package ingest

import (
	"strings"
	"testing"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYear = `[
  {
    "index": 12,
    "place": "Place Grenette",
    "description": "market square",
    "lat_1": 45.19, "lng_1": 5.72, "lat_2": 45.2, "lng_2": 5.73,
    "x_1": 10, "x_2": 0, "x_3": 30, "y_1": 5, "y_2": 6,
    "video": {"id": 123456, "caption": "morning"},
    "photo_1": {"large": "/img/12-1.jpg", "caption": "north"},
    "photo_3": {"large": "/img/12-3.jpg", "caption": "south"}
  },
  {
    "index": 13,
    "place": "Quai",
    "video": {"id": 0},
    "photo_2": {"large": "/img/13-2.jpg"}
  }
]`

func TestParse(t *testing.T) {
	items, err := Parse(strings.NewReader(sampleYear), 2016, "https://cdn.example")
	require.NoError(t, err)
	require.Len(t, items, 4)

	video := items[0]
	assert.Equal(t, models.MediaVideo, video.Type)
	assert.Equal(t, "https://vimeo.com/123456", video.URL)
	assert.Equal(t, "morning", video.Caption)
	assert.Equal(t, 2016, video.Year)
	assert.Equal(t, 12, video.SquareIndex)
	assert.JSONEq(t,
		`{"lat_1":45.19,"lng_1":5.72,"lat_2":45.2,"lng_2":5.73,"x_coords":[10,30],"y_coords":[5,6]}`,
		string(video.Coords))

	assert.Equal(t, models.MediaImage, items[1].Type)
	assert.Equal(t, "https://cdn.example/img/12-1.jpg", items[1].URL)
	assert.Equal(t, "https://cdn.example/img/12-3.jpg", items[2].URL)
	assert.Equal(t, "Place Grenette", items[2].Place)

	last := items[3]
	assert.Equal(t, 13, last.SquareIndex)
	assert.Equal(t, models.MediaImage, last.Type, "a zero video id yields no video item")
	assert.JSONEq(t,
		`{"lat_1":null,"lng_1":null,"lat_2":null,"lng_2":null,"x_coords":[],"y_coords":[]}`,
		string(last.Coords))
}

func TestParse_BadJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"index":`), 2016, DefaultBaseURL)
	assert.Error(t, err)
}

func TestYearFromFilename(t *testing.T) {
	year, err := YearFromFilename("/data/2018-data.json")
	require.NoError(t, err)
	assert.Equal(t, 2018, year)

	_, err = YearFromFilename("2018.json")
	assert.Error(t, err)

	_, err = YearFromFilename("abc-data.json")
	assert.Error(t, err)
}

func TestSortedDataFiles(t *testing.T) {
	got := SortedDataFiles([]string{"2019-data.json", "README.md", "2016-data.json", "2017-data.json"})
	assert.Equal(t, []string{"2016-data.json", "2017-data.json", "2019-data.json"}, got)
}
