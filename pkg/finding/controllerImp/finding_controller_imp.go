package controllerImp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"geofoto/entities"
	"geofoto/pkg/finding/controller"
	"geofoto/pkg/finding/export"
	"geofoto/pkg/finding/service"
	"geofoto/pkg/location"
	"geofoto/pkg/mapview"
	"geofoto/web"
)

const (
	msgSaveFailed = "The finding could not be saved. Nothing was stored; please try again."
	msgLoadFailed = "Saved findings could not be loaded."
)

type Resolver interface {
	Resolve(ctx context.Context, in location.Input) location.Result
}

// Observer receives the outcome of every save and of manual locations.
type Observer interface {
	ObserveResolution(source string)
	ObserveSave(outcome string)
}

type FindingCtrl struct {
	svc       service.FindingService
	resolver  Resolver
	obs       Observer
	logger    *slog.Logger
	maxUpload int64
}

func New(svc service.FindingService, resolver Resolver, obs Observer, logger *slog.Logger, maxUploadMB int) controller.FindingController {
	if logger == nil {
		logger = slog.Default()
	}
	return &FindingCtrl{
		svc:       svc,
		resolver:  resolver,
		obs:       obs,
		logger:    logger,
		maxUpload: int64(maxUploadMB) << 20,
	}
}

func (h *FindingCtrl) Index(c echo.Context) error {
	ctx := c.Request().Context()
	res := h.resolver.Resolve(ctx, location.Input{})
	page := h.page(ctx, res)
	page.Form = prefill(res)
	return c.Render(statusFor(page), "index.html", page)
}

func (h *FindingCtrl) Locate(c echo.Context) error {
	ctx := c.Request().Context()
	img, err := h.readPhoto(c)
	if err == nil && img == nil {
		err = &uploadError{status: http.StatusBadRequest, msg: "Choose a photo to upload."}
	}
	if err != nil {
		return h.renderUploadError(c, err)
	}

	res := h.resolver.Resolve(ctx, location.Input{Image: img.data})
	page := h.page(ctx, res)
	page.Form = prefill(res)
	page.Preview = img.dataURI()
	if res.Found && res.Source == location.SourceImage {
		page.Notice = "Location read from the photo."
	}
	return c.Render(statusFor(page), "index.html", page)
}

func (h *FindingCtrl) Create(c echo.Context) error {
	ctx := c.Request().Context()
	form := formValues(c)

	img, err := h.readPhoto(c)
	if err != nil {
		return h.renderUploadError(c, err)
	}

	f, err := parseFinding(form)
	if err != nil {
		return h.saveRejected(c, form, err)
	}

	var res location.Result
	if form.Latitude == "" && form.Longitude == "" {
		in := location.Input{}
		if img != nil {
			in.Image = img.data
		}
		res = h.resolver.Resolve(ctx, in)
	} else {
		coord, err := parseCoordinate(form.Latitude, form.Longitude)
		if err != nil {
			return h.saveRejected(c, form, err)
		}
		res = location.Manual(coord)
		h.observeResolution(string(location.SourceManual))
	}
	if res.Found {
		lat, lon := res.Lat, res.Lon
		f.Latitude, f.Longitude = &lat, &lon
	}

	if err := h.svc.Save(ctx, f); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return h.saveRejected(c, form, err)
		}
		h.logger.Error("save finding failed", "error", err)
		h.observeSave("error")
		if web.WantsJSON(c) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgSaveFailed})
		}
		page := h.page(ctx, res)
		page.Form = form
		page.Error = msgSaveFailed
		return c.Render(http.StatusInternalServerError, "index.html", page)
	}

	h.observeSave("ok")
	h.logger.Info("finding saved", "id", f.ID, "classification", f.Classification, "source", res.Source)
	if web.WantsJSON(c) {
		return c.JSON(http.StatusCreated, echo.Map{"finding": f, "location": locationBody(res)})
	}
	page := h.page(ctx, res)
	page.Form = prefill(res)
	page.Saved = f
	page.Notice = fmt.Sprintf("Finding #%d saved.", f.ID)
	if img != nil {
		page.Preview = img.dataURI()
	}
	return c.Render(statusFor(page), "index.html", page)
}

func (h *FindingCtrl) ListJSON(c echo.Context) error {
	fs, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		h.logger.Error("list findings failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgLoadFailed})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"findings": fs,
		"map":      mapview.Build(mapview.FromFindings(fs)),
	})
}

func (h *FindingCtrl) LocationJSON(c echo.Context) error {
	res := h.resolver.Resolve(c.Request().Context(), location.Input{})
	return c.JSON(http.StatusOK, locationBody(res))
}

func (h *FindingCtrl) ExportXLSX(c echo.Context) error {
	fs, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		h.logger.Error("export findings failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgLoadFailed})
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, fs); err != nil {
		h.logger.Error("export findings failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="findings.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// page builds the common view; a store failure is reported on the page
// rather than failing the whole request.
func (h *FindingCtrl) page(ctx context.Context, res location.Result) web.IndexPage {
	p := web.IndexPage{
		Location:        res,
		Classifications: entities.Classifications,
	}
	fs, err := h.svc.ListAll(ctx)
	if err != nil {
		h.logger.Error("list findings failed", "error", err)
		p.Error = msgLoadFailed
		fs = nil
	}
	p.Map = mapview.Build(mapview.FromFindings(fs))
	return p
}

func (h *FindingCtrl) saveRejected(c echo.Context, form web.FormValues, err error) error {
	h.observeSave("invalid")
	h.logger.Info("finding rejected", "error", err)
	if web.WantsJSON(c) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	page := h.page(c.Request().Context(), location.Absent())
	page.Location = locationFromForm(form)
	page.Form = form
	page.Error = err.Error()
	return c.Render(http.StatusUnprocessableEntity, "index.html", page)
}

func (h *FindingCtrl) renderUploadError(c echo.Context, err error) error {
	status := http.StatusBadRequest
	msg := "The photo could not be read."
	var ue *uploadError
	if errors.As(err, &ue) {
		status, msg = ue.status, ue.msg
	}
	h.logger.Info("photo upload rejected", "status", status, "error", err)
	if web.WantsJSON(c) {
		return c.JSON(status, echo.Map{"error": msg})
	}
	page := h.page(c.Request().Context(), location.Absent())
	page.Form = formValues(c)
	page.Error = msg
	return c.Render(status, "index.html", page)
}

func (h *FindingCtrl) observeSave(outcome string) {
	if h.obs != nil {
		h.obs.ObserveSave(outcome)
	}
}

func (h *FindingCtrl) observeResolution(source string) {
	if h.obs != nil {
		h.obs.ObserveResolution(source)
	}
}

func statusFor(p web.IndexPage) int {
	if p.Error == msgLoadFailed {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

type locationJSON struct {
	Found  bool            `json:"found"`
	Source location.Source `json:"source"`
	Lat    *float64        `json:"lat,omitempty"`
	Lon    *float64        `json:"lon,omitempty"`
}

// locationBody leaves lat/lon out entirely when nothing was found.
func locationBody(res location.Result) locationJSON {
	out := locationJSON{Found: res.Found, Source: res.Source}
	if res.Found {
		lat, lon := res.Lat, res.Lon
		out.Lat, out.Lon = &lat, &lon
	}
	return out
}

func prefill(res location.Result) web.FormValues {
	if !res.Found {
		return web.FormValues{}
	}
	return web.FormValues{
		Latitude:  strconv.FormatFloat(res.Lat, 'f', 6, 64),
		Longitude: strconv.FormatFloat(res.Lon, 'f', 6, 64),
	}
}

func locationFromForm(form web.FormValues) location.Result {
	c, err := parseCoordinate(form.Latitude, form.Longitude)
	if err != nil {
		return location.Absent()
	}
	return location.Manual(c)
}

func formValues(c echo.Context) web.FormValues {
	get := func(k string) string { return strings.TrimSpace(c.FormValue(k)) }
	return web.FormValues{
		Latitude:         get("latitude"),
		Longitude:        get("longitude"),
		Classification:   get("classification"),
		DepthMM:          get("depth_mm"),
		LengthMM:         get("length_mm"),
		SupportMaterial:  get("support_material"),
		HasPatterns:      checked(get("has_recognizable_patterns")),
		PatternCount:     get("pattern_count"),
		HasStraightLines: checked(get("has_straight_lines")),
		Notes:            c.FormValue("notes"),
	}
}

func checked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
