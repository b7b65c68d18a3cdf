package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/rhobs/launch-dash/pkg/controls"
	"github.com/rhobs/launch-dash/pkg/dispatch"
	"github.com/rhobs/launch-dash/pkg/figure"
	"github.com/rhobs/launch-dash/pkg/render"
)

const maxUpdateBytes = 1 << 20

type updateResponse struct {
	Updates []dispatch.Update `json:"updates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (d *dashboard) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := d.page.Execute(&buf, newPageData(d.layout)); err != nil {
		slog.Error("failed to render dashboard page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (d *dashboard) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, d.layout)
}

func (d *dashboard) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var ev dispatch.Event
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBytes))
	if err := dec.Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid update request: %w", err))
		return
	}
	slog.Debug("Update requested", "changed", ev.Changed, "values", ev.Values)

	updates, err := d.dispatcher.Dispatch(r.Context(), ev)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{Updates: updates})
}

// handleChart renders one output as an image. The file name is the output
// ID followed by the image format, and control values come from the query.
func (d *dashboard) handleChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ext := path.Ext(file)
	output := strings.TrimSuffix(file, ext)

	format, err := render.ParseFormat(ext)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	values := controls.Values{}
	query := r.URL.Query()
	for _, def := range controls.AllControls() {
		if !query.Has(def.ID) {
			continue
		}
		v, err := controls.ParseQueryValue(def, query.Get(def.ID))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		values[def.ID] = v
	}

	result, err := d.dispatcher.Call(r.Context(), output, values)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if result.IsError() {
		writeError(w, http.StatusInternalServerError, result.Error)
		return
	}

	fig, ok := result.Data.(figure.Figure)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("output %s did not produce a figure", output))
		return
	}

	var buf bytes.Buffer
	if err := render.Figure(&buf, fig, format, d.chart); err != nil {
		slog.Error("failed to render chart", "output", output, "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	d.metrics.ObserveRender(output, string(format))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dispatch.ErrInvalidValues), errors.Is(err, dispatch.ErrUnknownControl):
		return http.StatusBadRequest
	case errors.Is(err, dispatch.ErrUnknownOutput):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", err)
	} else {
		slog.Debug("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
