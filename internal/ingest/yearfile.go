// Package ingest turns the yearly survey data files into catalog items.
// It sits outside the evaluation core; the core only ever sees MediaItems.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Vovarama1992/ambiance/internal/models"
	json "github.com/goccy/go-json"
)

const (
	DefaultBaseURL = "https://grenoble.transect.fr"
	FileSuffix     = "-data.json"
	vimeoPrefix    = "https://vimeo.com/"
)

type photo struct {
	Large   string `json:"large"`
	Caption string `json:"caption"`
}

type video struct {
	ID      any    `json:"id"`
	Caption string `json:"caption"`
}

type entry struct {
	Index       int      `json:"index"`
	Place       string   `json:"place"`
	Description string   `json:"description"`
	Lat1        *float64 `json:"lat_1"`
	Lng1        *float64 `json:"lng_1"`
	Lat2        *float64 `json:"lat_2"`
	Lng2        *float64 `json:"lng_2"`
	X1          *float64 `json:"x_1"`
	X2          *float64 `json:"x_2"`
	X3          *float64 `json:"x_3"`
	X4          *float64 `json:"x_4"`
	Y1          *float64 `json:"y_1"`
	Y2          *float64 `json:"y_2"`
	Y3          *float64 `json:"y_3"`
	Y4          *float64 `json:"y_4"`
	Video       *video   `json:"video"`
	Photo1      *photo   `json:"photo_1"`
	Photo2      *photo   `json:"photo_2"`
	Photo3      *photo   `json:"photo_3"`
	Photo4      *photo   `json:"photo_4"`
}

type coords struct {
	Lat1    *float64  `json:"lat_1"`
	Lng1    *float64  `json:"lng_1"`
	Lat2    *float64  `json:"lat_2"`
	Lng2    *float64  `json:"lng_2"`
	XCoords []float64 `json:"x_coords"`
	YCoords []float64 `json:"y_coords"`
}

// nonZero keeps the set values; zero and missing corners are dropped.
func nonZero(vals ...*float64) []float64 {
	out := []float64{}
	for _, v := range vals {
		if v != nil && *v != 0 {
			out = append(out, *v)
		}
	}
	return out
}

// YearFromFilename parses "2016-data.json" into 2016.
func YearFromFilename(name string) (int, error) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, FileSuffix) {
		return 0, fmt.Errorf("%s: not a data file", base)
	}
	year, err := strconv.Atoi(strings.SplitN(base, "-", 2)[0])
	if err != nil {
		return 0, fmt.Errorf("%s: bad year: %w", base, err)
	}
	return year, nil
}

// SortedDataFiles filters names down to data files, oldest year first.
func SortedDataFiles(names []string) []string {
	var out []string
	for _, n := range names {
		if strings.HasSuffix(n, FileSuffix) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Parse reads one year file. Each entry yields at most one video and up to
// four images, all sharing the entry's square index, place and coords.
func Parse(r io.Reader, year int, baseURL string) ([]models.MediaItem, error) {
	var entries []entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode year %d: %w", year, err)
	}

	var items []models.MediaItem
	for _, e := range entries {
		geo, err := json.Marshal(coords{
			Lat1:    e.Lat1,
			Lng1:    e.Lng1,
			Lat2:    e.Lat2,
			Lng2:    e.Lng2,
			XCoords: nonZero(e.X1, e.X2, e.X3, e.X4),
			YCoords: nonZero(e.Y1, e.Y2, e.Y3, e.Y4),
		})
		if err != nil {
			return nil, fmt.Errorf("encode coords square %d: %w", e.Index, err)
		}

		base := models.MediaItem{
			Year:        year,
			SquareIndex: e.Index,
			Place:       e.Place,
			Description: e.Description,
			Coords:      geo,
		}

		if id := videoID(e.Video); id != "" {
			v := base
			v.Type = models.MediaVideo
			v.URL = vimeoPrefix + id
			v.Caption = e.Video.Caption
			items = append(items, v)
		}

		for _, p := range []*photo{e.Photo1, e.Photo2, e.Photo3, e.Photo4} {
			if p == nil {
				continue
			}
			img := base
			img.Type = models.MediaImage
			img.URL = baseURL + p.Large
			img.Caption = p.Caption
			items = append(items, img)
		}
	}
	return items, nil
}

func videoID(v *video) string {
	if v == nil || v.ID == nil {
		return ""
	}
	switch id := v.ID.(type) {
	case string:
		return id
	case float64:
		if id == 0 {
			return ""
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}
