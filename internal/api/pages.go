package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/beanclass/internal/features"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type pageView struct {
	Title  string
	Layout string
	Fields []fieldView
	Result *resultView
}

type fieldView struct {
	Feature string
	Label   string
	Widget  string
	Value   string
	Min     string
	Max     string
	Step    string
	Levels  []levelView
}

type levelView struct {
	Name    string
	Checked bool
}

type resultView struct {
	OK      bool
	Label   string
	Message string
}

func (s *Server) handleNumericForm(c *echo.Context) error {
	return s.renderForm(c, http.StatusOK, features.NumericLayout(), nil, nil)
}

func (s *Server) handleSliderForm(c *echo.Context) error {
	return s.renderForm(c, http.StatusOK, features.SliderLayout(), nil, nil)
}

func (s *Server) handleFormPredict(c *echo.Context) error {
	id := newPredictionID()
	r := c.Request()
	if err := r.ParseForm(); err != nil {
		return writeBadRequest(c, id, err.Error())
	}
	layout, ok := features.LayoutByName(r.PostForm.Get("layout"))
	if !ok {
		return writeBadRequest(c, id, "unknown layout "+strconv.Quote(r.PostForm.Get("layout")))
	}
	lookup := func(key string) (string, bool) {
		vs, ok := r.PostForm[key]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	}

	x, err := layout.Assemble(lookup)
	if err != nil {
		return s.renderForm(c, http.StatusBadRequest, layout, lookup, &resultView{Message: err.Error()})
	}
	if s.classifier == nil {
		return s.renderForm(c, http.StatusInternalServerError, layout, lookup, &resultView{Message: "classifier not configured"})
	}
	res := s.classifier.Classify(r.Context(), x)
	if !res.OK() {
		s.log.Warn("prediction failed", "id", id, "surface", layout.Name, "error", res.Err)
		status := http.StatusInternalServerError
		if errors.Is(res.Err, features.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		return s.renderForm(c, status, layout, lookup, &resultView{Message: res.Err.Error()})
	}
	s.log.Info("prediction", "id", id, "surface", layout.Name, "label", res.Label)
	return s.renderForm(c, http.StatusOK, layout, lookup, &resultView{OK: true, Label: res.Label})
}

// renderForm draws layout with submitted values when lookup is set and the
// layout defaults otherwise.
func (s *Server) renderForm(c *echo.Context, status int, layout features.Layout, lookup func(string) (string, bool), result *resultView) error {
	view := pageView{
		Title:  "Bean Type Classifier (Gradient Boosting)",
		Layout: layout.Name,
		Fields: make([]fieldView, 0, len(layout.Fields)),
		Result: result,
	}
	for _, f := range layout.Fields {
		fv := fieldView{
			Feature: f.Feature,
			Label:   f.Label,
			Widget:  string(f.Widget),
			Value:   formatNumber(f.Default),
		}
		if f.Widget == features.WidgetSlider {
			fv.Min, fv.Max, fv.Step = formatNumber(f.Min), formatNumber(f.Max), formatNumber(f.Step)
		}
		submitted := ""
		if lookup != nil {
			if v, ok := lookup(f.Feature); ok && v != "" {
				fv.Value, submitted = v, v
			}
		}
		if f.Widget == features.WidgetRadio {
			selected := f.DefaultLevel
			if l, err := features.ParseLevel(submitted); err == nil {
				selected = l
			}
			for _, l := range features.Levels() {
				fv.Levels = append(fv.Levels, levelView{Name: string(l), Checked: l == selected})
			}
		}
		view.Fields = append(view.Fields, fv)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
