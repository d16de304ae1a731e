package meter

import (
	"fmt"
	"math"
)

// Gauge geometry, in SVG user units. The dial is the upper half of a circle.
const (
	GaugeWidth  = 300
	GaugeHeight = 170

	gaugeCenterX     = 150.0
	gaugeCenterY     = 150.0
	gaugeRadius      = 120.0
	thresholdInside  = 20.0
	thresholdOutside = 10.0
	gaugeStepPercent = 25
)

var (
	stepColors = []string{
		"rgba(100, 100, 100, 0.7)",
		"rgba(150, 150, 150, 0.7)",
		"rgba(200, 200, 200, 0.7)",
		"rgba(250, 250, 250, 0.7)",
	}

	levelColors = map[Level]string{
		LevelStrong:   "#00FF00",
		LevelModerate: "#FFD700",
		LevelWeak:     "#FF0000",
	}
)

// GaugeStep is one background band of the dial.
type GaugeStep struct {
	From  int
	To    int
	Color string
	Path  string
}

// Gauge is everything a template needs to draw the score dial.
type Gauge struct {
	Percent   int
	Color     string
	Steps     []GaugeStep
	Bar       string
	Threshold string
}

// NewGauge lays out the dial for the result.
func NewGauge(r *Result) *Gauge {
	p := r.Percent()
	g := &Gauge{
		Percent:   p,
		Color:     levelColors[r.Level()],
		Steps:     make([]GaugeStep, 0, len(stepColors)),
		Threshold: radialLine(p, gaugeRadius-thresholdInside, gaugeRadius+thresholdOutside),
	}

	for i, c := range stepColors {
		from := i * gaugeStepPercent
		to := from + gaugeStepPercent
		g.Steps = append(g.Steps, GaugeStep{
			From:  from,
			To:    to,
			Color: c,
			Path:  arcPath(from, to),
		})
	}

	if p > 0 {
		g.Bar = arcPath(0, p)
	}
	return g
}

// ColorFor returns the accent colour of a level.
func ColorFor(l Level) string {
	return levelColors[l]
}

func point(percent int, radius float64) (float64, float64) {
	theta := math.Pi * (1 - float64(percent)/100)
	return gaugeCenterX + radius*math.Cos(theta), gaugeCenterY - radius*math.Sin(theta)
}

func arcPath(from, to int) string {
	x0, y0 := point(from, gaugeRadius)
	x1, y1 := point(to, gaugeRadius)
	return fmt.Sprintf("M %.2f %.2f A %.0f %.0f 0 0 1 %.2f %.2f", x0, y0, gaugeRadius, gaugeRadius, x1, y1)
}

func radialLine(percent int, inner, outer float64) string {
	x0, y0 := point(percent, inner)
	x1, y1 := point(percent, outer)
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f", x0, y0, x1, y1)
}
