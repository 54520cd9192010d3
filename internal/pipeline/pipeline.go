// Package pipeline turns a reservation document into the booking script:
// parse and validate, extract, render.
package pipeline

import (
	"fmt"
	"time"

	"github.com/nbenliogludev/seaware-booking-agent/internal/extract"
	"github.com/nbenliogludev/seaware-booking-agent/internal/prompt"
	"github.com/nbenliogludev/seaware-booking-agent/internal/reservation"
)

type Pipeline struct {
	renderer *prompt.Renderer
}

func New(r *prompt.Renderer) *Pipeline {
	return &Pipeline{renderer: r}
}

// Result holds the extracted views next to the script rendered from them.
type Result struct {
	StartDate  time.Time
	Cabins     []extract.CabinInformation
	Passengers []extract.PassengerInformation
	Prompt     string
}

// CreatePrompt parses data and returns the rendered script.
func (p *Pipeline) CreatePrompt(data []byte) (string, error) {
	res, err := reservation.Parse(data)
	if err != nil {
		return "", err
	}
	out, err := p.Build(res)
	if err != nil {
		return "", err
	}
	return out.Prompt, nil
}

// Build runs extraction and rendering over an already validated reservation.
func (p *Pipeline) Build(res *reservation.Reservation) (*Result, error) {
	cabins, err := extract.Cabins(res)
	if err != nil {
		return nil, fmt.Errorf("extract cabins: %w", err)
	}
	passengers, err := extract.Passengers(res)
	if err != nil {
		return nil, fmt.Errorf("extract passengers: %w", err)
	}

	startDate := extract.StartDate(res)
	text, err := p.renderer.Render(prompt.Data{
		StartDate:  startDate,
		Cabins:     cabins,
		Passengers: passengers,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		StartDate:  startDate,
		Cabins:     cabins,
		Passengers: passengers,
		Prompt:     text,
	}, nil
}

// TemplateKey identifies the template a result was rendered with.
func (p *Pipeline) TemplateKey() string {
	return p.renderer.Name() + "@" + p.renderer.Version()
}
