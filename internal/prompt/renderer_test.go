package prompt

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbenliogludev/seaware-booking-agent/internal/extract"
)

func golden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

var startDate = time.Date(2028, time.March, 18, 0, 0, 0, 0, time.UTC)

func newRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(opts...)
	require.NoError(t, err)
	return r
}

func TestRender_SingleCabin(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Render(Data{
		StartDate: startDate,
		Cabins:    []extract.CabinInformation{{CabinNumber: "336", CabinType: "Outside Cabin", CabinCategory: "N2"}},
		Passengers: []extract.PassengerInformation{
			{PassengerName: "FREDI KRUGER", PassengerEmail: "test@test.com"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, golden(t, "single_cabin.txt"), out)
	assert.NotContains(t, out, "FREDI KRUGER")
}

// Consumers compare the script verbatim. It opens with a newline, indents
// steps by eight spaces, keeps the space after "is selected" and closes on
// an indented empty line.
func TestRender_Layout(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Render(Data{
		StartDate: startDate,
		Cabins:    []extract.CabinInformation{{CabinNumber: "336", CabinType: "Outside Cabin", CabinCategory: "N2"}},
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\n        1. Navigate and login:\n            - Navigate to "))
	assert.Contains(t, out, "\n        3. Selecting the correct cabin:\n")
	assert.Contains(t, out, "\n                - Click the bin icon to remove it\n")
	assert.Contains(t, out, "            - Verify that the cabin number is 336 is selected \n            - Click accept")
	assert.True(t, strings.HasSuffix(out, "            - Click accept\n        "))
}

func TestRender_TwoCabinsPairedByIndex(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Render(Data{
		StartDate: startDate,
		Cabins: []extract.CabinInformation{
			{CabinNumber: "336", CabinType: "Outside Cabin", CabinCategory: "N2"},
			{CabinNumber: "528", CabinType: "Suite", CabinCategory: "Q2"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, golden(t, "two_cabins.txt"), out)

	section := out[strings.Index(out, "3. Selecting the correct cabin:"):]
	assert.Equal(t, 1, strings.Count(section, "- Click continue"))

	n2 := strings.Index(section, "code N2 in the list")
	q2 := strings.Index(section, "code Q2 in the list")
	cont := strings.Index(section, "- Click continue")
	s336 := strings.Index(section, "Search for the cabin 336")
	s528 := strings.Index(section, "Search for the cabin 528")
	assert.True(t, n2 < q2 && q2 < cont && cont < s336 && s336 < s528)
}

func TestRender_DateFormatting(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Render(Data{StartDate: time.Date(2027, time.January, 5, 0, 0, 0, 0, time.UTC)})

	require.NoError(t, err)
	assert.Contains(t, out, "click on 2027 using the select_dropdown_option function")
	assert.Contains(t, out, "the month where it says January")
	assert.Contains(t, out, "Click on the tile on the day 5 of the month.")
	assert.Contains(t, out, "Tour Start date 05 Jan 2027.")
}

func TestRender_NoCabins(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Render(Data{StartDate: startDate})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "        3. Selecting the correct cabin:\n            - Click continue\n        "), out)
}

func TestRender_Deterministic(t *testing.T) {
	r := newRenderer(t)
	data := Data{
		StartDate: startDate,
		Cabins:    []extract.CabinInformation{{CabinNumber: "336", CabinType: "Outside Cabin", CabinCategory: "N2"}},
	}

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := r.Render(data)
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}
	wg.Wait()

	want := golden(t, "single_cabin.txt")
	for _, out := range results {
		assert.Equal(t, want, out)
	}
}

func TestNewRenderer_MissingTemplate(t *testing.T) {
	_, err := NewRenderer(WithName("does_not_exist.tmpl"))

	var terr *TemplateResourceError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "load", terr.Op)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNewRenderer_InvalidName(t *testing.T) {
	_, err := NewRenderer(WithName("../secrets.tmpl"))

	var terr *TemplateResourceError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestNewRenderer_MalformedTemplate(t *testing.T) {
	tests := map[string]string{
		"syntax":        "{{range .Cabins}}never closed",
		"unknown field": "{{.Tour}}",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"broken.tmpl": {Data: []byte(src)}}

			_, err := NewRenderer(WithFS(fsys), WithName("broken.tmpl"))

			var terr *TemplateResourceError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, "broken.tmpl", terr.Name)
		})
	}
}

func TestNewRenderer_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	src := "{{.StartDate.Year}}{{range .Cabins}} {{.CabinCategory}}/{{.CabinNumber}}{{end}}{{range .Passengers}} {{.PassengerEmail}}{{end}}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.tmpl"), []byte(src), 0o644))

	r := newRenderer(t, WithDir(dir), WithName("custom.tmpl"))
	out, err := r.Render(Data{
		StartDate:  startDate,
		Cabins:     []extract.CabinInformation{{CabinNumber: "336", CabinCategory: "N2"}},
		Passengers: []extract.PassengerInformation{{PassengerEmail: "test@test.com"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "2028 N2/336 test@test.com", out)
	assert.Equal(t, "custom.tmpl", r.Name())
}

func TestRenderer_VersionTracksSource(t *testing.T) {
	a := newRenderer(t, WithFS(fstest.MapFS{"a.tmpl": {Data: []byte("one")}}), WithName("a.tmpl"))
	b := newRenderer(t, WithFS(fstest.MapFS{"a.tmpl": {Data: []byte("two")}}), WithName("a.tmpl"))
	c := newRenderer(t)

	assert.NotEqual(t, a.Version(), b.Version())
	assert.Len(t, c.Version(), 16)
	assert.Equal(t, DefaultTemplate, c.Name())
}
