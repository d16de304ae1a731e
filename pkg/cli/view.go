package cli

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/AAliKKhan/PassMeterX/pkg/meter"
	"github.com/AAliKKhan/PassMeterX/pkg/metrics"
)

const (
	passwordField       = "password"
	passwordRequiredMsg = "PASSWORD REQUIRED"
)

type pageData struct {
	Version   string
	Commit    string
	BuildDate string
	Err       string

	Report      *report
	Gauge       *meter.Gauge
	GaugeWidth  int
	GaugeHeight int
}

func newPageData() *pageData {
	return &pageData{
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		GaugeWidth:  meter.GaugeWidth,
		GaugeHeight: meter.GaugeHeight,
	}
}

func faviconHandler(w http.ResponseWriter, r *http.Request) {
	file, err := embedFS.ReadFile("assets/img/favicon.svg")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err = w.Write(file); err != nil {
		slog.Error("failed to write favicon", "error", err)
	}
}

func homeViewHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		render(w, tmpl, http.StatusOK, newPageData())
	}
}

func scanViewHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			slog.Debug("invalid form submission", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		d := newPageData()
		password := r.PostFormValue(passwordField)
		if password == "" {
			d.Err = passwordRequiredMsg
			render(w, tmpl, http.StatusOK, d)
			return
		}

		res := meter.Evaluate(password)
		metrics.ObserveEvaluation(metrics.SourceForm, res)

		d.Report = newReport(res)
		d.Gauge = meter.NewGauge(res)

		w.Header().Set("Cache-Control", "no-store")
		render(w, tmpl, http.StatusOK, d)
	}
}

func render(w http.ResponseWriter, tmpl *template.Template, status int, d *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "home", d); err != nil {
		slog.Error("template render failed", "error", err)
	}
}
